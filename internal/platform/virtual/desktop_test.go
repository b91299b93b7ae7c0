package virtual

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mj1618/desktop-mcp/internal/model"
	"github.com/mj1618/desktop-mcp/internal/platform"
)

func loadTestDesktop(t *testing.T) *Desktop {
	t.Helper()
	d, err := LoadFile("testdata/desktop.yaml")
	require.NoError(t, err)
	return d
}

func TestLoadFile_BuildsTree(t *testing.T) {
	d := loadTestDesktop(t)

	windows, err := d.TopLevelWindows()
	require.NoError(t, err)
	require.Len(t, windows, 1)

	name, _ := windows[0].Name()
	assert.Equal(t, "Login - Acme", name)
	pid, _ := windows[0].ProcessID()
	assert.Equal(t, 4242, pid)

	procName, err := d.ProcessName(4242)
	require.NoError(t, err)
	assert.Equal(t, "acme", procName)
}

func TestNew_RejectsUnknownControlType(t *testing.T) {
	_, err := FromYAML("windows:\n  - controlType: Widget\n")
	assert.Error(t, err)
}

func TestParseFixture_RejectsUnknownFields(t *testing.T) {
	_, err := FromYAML("windows:\n  - controlType: Window\n    colour: red\n")
	assert.Error(t, err)
}

func TestHiddenElementRevealedByInvoke(t *testing.T) {
	d := loadTestDesktop(t)
	root, _ := d.Root()

	found, err := platform.FindFirst(root, platform.ByAutomationID("statusText"))
	require.NoError(t, err)
	assert.Nil(t, found, "hidden element must not be enumerated")

	inv, ok := d.Lookup("submitBtn").Invoker()
	require.True(t, ok)
	require.NoError(t, inv.Invoke())

	found, err = platform.FindFirst(root, platform.ByAutomationID("statusText"))
	require.NoError(t, err)
	assert.NotNil(t, found)
}

func TestAppearAfter(t *testing.T) {
	d, err := FromYAML(`
windows:
  - controlType: Window
    name: Slow
    appearAfter: 50ms
`)
	require.NoError(t, err)

	ws, _ := d.TopLevelWindows()
	assert.Empty(t, ws)
	time.Sleep(80 * time.Millisecond)
	ws, _ = d.TopLevelWindows()
	assert.Len(t, ws, 1)
}

func TestValueCapability(t *testing.T) {
	d := loadTestDesktop(t)
	v, ok := d.Lookup("emailBox").Value()
	require.True(t, ok)
	require.NoError(t, v.SetValue("admin@example.com"))
	got, err := v.Value()
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", got)

	_, ok = d.Lookup("submitBtn").Value()
	assert.False(t, ok)
}

func TestValueReadBackFault(t *testing.T) {
	d, err := FromYAML(`
windows:
  - controlType: Window
    children:
      - controlType: Edit
        automationId: flaky
        value: ""
        faults:
          valueReadBack: "???"
`)
	require.NoError(t, err)
	v, _ := d.Lookup("flaky").Value()
	require.NoError(t, v.SetValue("hello"))
	got, _ := v.Value()
	assert.Equal(t, "???", got)
}

func TestClickHitsDeepestElement(t *testing.T) {
	d := loadTestDesktop(t)
	btn := d.Lookup("submitBtn")
	r, err := btn.BoundingRect()
	require.NoError(t, err)
	require.False(t, r.Empty())

	x, y := r.Center()
	require.NoError(t, d.Click(x, y, platform.MouseLeft, 1))
	assert.Equal(t, []string{"click submitBtn"}, d.EventKinds("click", "invoke"))
	assert.NotNil(t, d.Lookup("statusText"))
	root, _ := d.Root()
	status, err := platform.FindFirst(root, platform.ByAutomationID("statusText"))
	require.NoError(t, err)
	assert.NotNil(t, status, "pressing submit reveals the status text")
}

func TestClickTogglesAndSelects(t *testing.T) {
	d := loadTestDesktop(t)

	cb := d.Lookup("rememberMe")
	r, _ := cb.BoundingRect()
	require.NoError(t, d.Click(r.X+1, r.Y+1, platform.MouseLeft, 1))
	tg, _ := cb.Toggle()
	st, _ := tg.State()
	assert.Equal(t, platform.ToggleOn, st)

	root, _ := d.Root()
	pro, err := platform.FindFirst(root, platform.ByName("Pro"))
	require.NoError(t, err)
	r, _ = pro.BoundingRect()
	require.NoError(t, d.Click(r.X+1, r.Y+1, platform.MouseLeft, 1))
	si, _ := pro.SelectionItem()
	sel, _ := si.IsSelected()
	assert.True(t, sel)

	free, _ := platform.FindFirst(root, platform.ByName("Free"))
	si, _ = free.SelectionItem()
	sel, _ = si.IsSelected()
	assert.False(t, sel, "selecting a radio clears its siblings")
}

func TestSelectInComboSetsValue(t *testing.T) {
	d := loadTestDesktop(t)
	root, _ := d.Root()
	item, _ := platform.FindFirst(root, platform.ByName("Americas"))
	si, ok := item.SelectionItem()
	require.True(t, ok)
	require.NoError(t, si.Select())

	v, _ := d.Lookup("regionCombo").Value()
	got, _ := v.Value()
	assert.Equal(t, "Americas", got)
}

func TestKeyboardInput(t *testing.T) {
	d := loadTestDesktop(t)
	box := d.Lookup("emailBox")
	v, _ := box.Value()
	require.NoError(t, v.SetValue("old"))

	require.NoError(t, box.Focus())
	require.NoError(t, d.SendKeys("{HOME}+{END}{DEL}"))
	require.NoError(t, d.TypeText("new"))

	got, _ := v.Value()
	assert.Equal(t, "new", got)
}

func TestBringToForeground(t *testing.T) {
	d := loadTestDesktop(t)
	_, err := d.Launch(context.Background(), "/usr/bin/notepad", nil)
	require.NoError(t, err)

	fg, _ := d.Foreground().Name()
	assert.Equal(t, "Untitled - Notepad", fg)

	require.NoError(t, d.BringToForeground(d.Lookup("emailBox")))
	fg, _ = d.Foreground().Name()
	assert.Equal(t, "Login - Acme", fg)
}

func TestLaunchAndClose(t *testing.T) {
	d := loadTestDesktop(t)
	p, err := d.Launch(context.Background(), "notepad", []string{"a.txt"})
	require.NoError(t, err)
	assert.Equal(t, "notepad", p.Name)
	assert.True(t, d.IsRunning(p.PID))

	editor := d.Lookup("editor")
	require.NotNil(t, editor)
	ct, _ := editor.ControlType()
	assert.Equal(t, model.ControlDocument, ct)

	require.NoError(t, d.Close(context.Background(), p.PID, time.Second))
	assert.False(t, d.IsRunning(p.PID))
	_, err = editor.Name()
	assert.ErrorIs(t, err, platform.ErrElementGone)

	assert.Error(t, d.Close(context.Background(), p.PID, time.Second))
}

func TestLaunchUnknownExecutable(t *testing.T) {
	d := loadTestDesktop(t)
	_, err := d.Launch(context.Background(), "/bin/nope", nil)
	assert.Error(t, err)
}

func TestCloseKillsAfterGrace(t *testing.T) {
	d, err := FromYAML(`
apps:
  - name: stubborn
    path: /opt/stubborn
    ignoreClose: true
    windows:
      - controlType: Window
        name: Stubborn
`)
	require.NoError(t, err)
	p, err := d.Launch(context.Background(), "/opt/stubborn", nil)
	require.NoError(t, err)

	start := time.Now()
	require.NoError(t, d.Close(context.Background(), p.PID, 30*time.Millisecond))
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
	assert.Contains(t, d.EventKinds("kill"), "kill ")
}

func TestProvider(t *testing.T) {
	d := loadTestDesktop(t)
	p := d.Provider()
	assert.NoError(t, p.Validate())
}

func TestFixtureFileIsReadable(t *testing.T) {
	_, err := os.Stat("testdata/desktop.yaml")
	require.NoError(t, err)
	_, err = LoadFile("testdata/missing.yaml")
	assert.Error(t, err)
}
