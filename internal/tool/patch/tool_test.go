package patch

import (
	"context"
	"testing"

	"github.com/Cyclone1070/myshkin/internal/config"
	"github.com/Cyclone1070/myshkin/internal/tool"
	"github.com/Cyclone1070/myshkin/internal/tool/service/executor"
	"github.com/Cyclone1070/myshkin/internal/tool/service/path"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyPatchTool_Execute(t *testing.T) {
	runner := &mockRunner{result: &executor.Result{ExitCode: 1, Stderr: "patch: **** malformed patch at line 3\n"}}
	applier := NewApplier(runner, path.NewResolver(newRoot(t)), config.DefaultConfig(), zerolog.Nop())
	pt := NewApplyPatchTool(applier)

	strip := 1
	res, err := pt.Execute(context.Background(), &ApplyPatchRequest{Patch: twoLinePatch, Strip: &strip, DryRun: true})
	require.NoError(t, err)

	assert.Equal(t, "patch: **** malformed patch at line 3", res.LLMContent())
	assert.Equal(t, tool.PatchDisplay{ExitCode: 1, Stderr: "patch: **** malformed patch at line 3\n", DryRun: true}, res.Display())
	assert.Contains(t, runner.command, "-p1")
	assert.Contains(t, runner.command, "--dry-run")
}

func TestApplyPatchTool_DefaultStrip(t *testing.T) {
	runner := &mockRunner{result: &executor.Result{}}
	applier := NewApplier(runner, path.NewResolver(newRoot(t)), config.DefaultConfig(), zerolog.Nop())

	res, err := NewApplyPatchTool(applier).Execute(context.Background(), &ApplyPatchRequest{Patch: twoLinePatch})
	require.NoError(t, err)
	assert.Equal(t, "Patch applied successfully.", res.LLMContent())
	assert.Contains(t, runner.command, "-p0")
}

func TestApplyPatchRequest_Validate(t *testing.T) {
	negative := -2
	assert.ErrorIs(t, (&ApplyPatchRequest{}).Validate(), ErrEmptyPatch)
	assert.ErrorIs(t, (&ApplyPatchRequest{Patch: "x", Strip: &negative}).Validate(), ErrInvalidStrip)
	assert.NoError(t, (&ApplyPatchRequest{Patch: "x"}).Validate())
	assert.Equal(t, "Check patch in src", (&ApplyPatchRequest{Directory: "src", DryRun: true}).String())
	assert.Equal(t, "Apply patch in .", (&ApplyPatchRequest{}).String())
}

func TestApplyPatchTool_Declaration(t *testing.T) {
	pt := NewApplyPatchTool(NewApplier(&mockRunner{}, path.NewResolver("/tmp"), config.DefaultConfig(), zerolog.Nop()))
	decl := pt.Declaration()
	assert.Equal(t, "apply_patch", decl.Name)
	assert.Equal(t, []string{"patch"}, decl.Parameters.Required)
	assert.Panics(t, func() { NewApplyPatchTool(nil) })
}
