package automation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSteps(t *testing.T) {
	steps, err := ParseSteps([]byte(`
- write: {element: Email, text: admin@example.com}
- select: {element: Region, items: [Europe]}
- close:
`))
	require.NoError(t, err)
	require.Len(t, steps, 3)
	assert.Equal(t, "write", steps[0].Action)
	assert.Equal(t, "admin@example.com", steps[0].Params["text"])
	assert.Equal(t, []string{"Europe"}, ListParam(steps[1].Params, "items"))
	assert.NotNil(t, steps[2].Params)

	_, err = ParseSteps([]byte("- click: {element: a}\n  write: {element: b}\n"))
	assert.ErrorContains(t, err, "step 1")

	_, err = ParseSteps([]byte("  "))
	assert.Error(t, err)

	_, err = ParseSteps([]byte("click: {}"))
	assert.Error(t, err)
}

func TestParams(t *testing.T) {
	p := map[string]interface{}{
		"name":    42,
		"depth":   3,
		"double":  true,
		"timeout": 1.5,
		"items":   "a, b,,c",
	}
	assert.Equal(t, "42", StringParam(p, "name", ""))
	assert.Equal(t, "x", StringParam(p, "missing", "x"))
	assert.Equal(t, 3, IntParam(p, "depth", 0))
	assert.True(t, BoolParam(p, "double", false))
	assert.Equal(t, int64(1500), SecondsParam(p, "timeout").Milliseconds())
	assert.Equal(t, []string{"a", "b", "c"}, ListParam(p, "items"))
}

func TestDo_RunsAllSteps(t *testing.T) {
	e, _ := newTestEngine(t, loginFixture)
	steps, err := ParseSteps([]byte(`
- write: {element: Email, text: admin@example.com}
- check: {element: Remember me}
- select: {element: Region, items: Europe}
- click: {element: Submit}
- read: {element: statusText}
`))
	require.NoError(t, err)

	res := e.Do(context.Background(), steps, DoOptions{Window: "Login - Acme", StopOnError: true})
	require.True(t, res.OK, res.Message)
	require.Len(t, res.Steps, 5)
	assert.Equal(t, "5 of 5 steps completed", res.Message)
	for i, s := range res.Steps {
		assert.Equal(t, i+1, s.Step)
		assert.True(t, s.OK, s.Message)
	}
	assert.Equal(t, "Signed in as admin", res.Steps[4].Text)
}

func TestDo_StopOnError(t *testing.T) {
	e, _ := newTestEngine(t, loginFixture)
	steps := []Step{
		{Action: "click", Params: map[string]interface{}{"element": "Cancel"}},
		{Action: "click", Params: map[string]interface{}{"element": "Submit"}},
	}

	res := e.Do(context.Background(), steps, DoOptions{Window: "Login - Acme", StopOnError: true})
	assert.False(t, res.OK)
	assert.Equal(t, KindElementNotFound, res.Kind)
	assert.Len(t, res.Steps, 1)
	assert.Contains(t, res.Message, "step 1 (click)")

	res = e.Do(context.Background(), steps, DoOptions{Window: "Login - Acme"})
	assert.False(t, res.OK)
	require.Len(t, res.Steps, 2)
	assert.False(t, res.Steps[0].OK)
	assert.True(t, res.Steps[1].OK)
	assert.Contains(t, res.Message, "1 of 2 steps completed")
}

func TestDo_UnknownStep(t *testing.T) {
	e, _ := newTestEngine(t, loginFixture)

	res := e.Do(context.Background(), []Step{{Action: "dance"}}, DoOptions{})
	assert.False(t, res.OK)
	assert.Equal(t, KindInvalidArgument, res.Kind)
	require.Len(t, res.Steps, 1)
	assert.Contains(t, res.Steps[0].Message, `unknown step "dance"`)

	res = e.Do(context.Background(), nil, DoOptions{})
	assert.Equal(t, KindInvalidArgument, res.Kind)
}

func TestDo_WaitSteps(t *testing.T) {
	e, _ := newTestEngine(t, loginFixture)
	ctx := context.Background()

	res := e.Do(ctx, []Step{{Action: OpWaitForElement, Params: map[string]interface{}{"timeout": 0.05}}}, DoOptions{Window: "Login - Acme"})
	assert.False(t, res.OK)
	assert.Equal(t, KindInvalidArgument, res.Kind)
	require.Len(t, res.Steps, 1)
	assert.Equal(t, OpWaitForElement, res.Steps[0].Op)

	res = e.Do(ctx, []Step{{Action: "wait", Params: map[string]interface{}{}}}, DoOptions{Window: "Login - Acme"})
	require.True(t, res.OK, res.Message)
	assert.Equal(t, OpWaitForWindow, res.Steps[0].Op)

	res = e.Do(ctx, []Step{{Action: "wait", Params: map[string]interface{}{"element": "Submit"}}}, DoOptions{Window: "Login - Acme"})
	require.True(t, res.OK, res.Message)
	assert.Equal(t, OpWaitForElement, res.Steps[0].Op)
}

func TestDo_TreeFilter(t *testing.T) {
	e, _ := newTestEngine(t, loginFixture)

	res := e.Do(context.Background(), []Step{{Action: "tree", Params: map[string]interface{}{"filter": "Remember"}}}, DoOptions{Window: "Login - Acme"})
	require.True(t, res.OK, res.Message)
	require.Len(t, res.Steps, 1)
	require.NotNil(t, res.Steps[0].Tree)
	require.Len(t, res.Steps[0].Tree.Children, 1)
	assert.Equal(t, "rememberMe", res.Steps[0].Tree.Children[0].AutomationID)
}
