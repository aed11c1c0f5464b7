package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "enclose.dev/pkg/enclose/internal/model"
)

const hunksPatch = `diff --git a/svc.py b/svc.py
--- a/svc.py
+++ b/svc.py
@@ -1,3 +1,4 @@
 class Service:
     def start(self):
+        self.ready = True
         return self
diff --git a/missing.py b/missing.py
--- a/missing.py
+++ b/missing.py
@@ -1,1 +1,1 @@
-x = 1
+x = 2
`

func TestHunksCmd_Patch(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "svc.py"),
		[]byte("class Service:\n    def start(self):\n        self.ready = True\n        return self\n"), 0o644))

	patch := filepath.Join(t.TempDir(), "change.diff")
	require.NoError(t, os.WriteFile(patch, []byte(hunksPatch), 0o644))

	cmd, out := newTestRootCmd(t, "hunks", "--patch", patch, "--root", root)
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), `"hunk": "@@ -1,3 +1,4 @@"`)
	assert.Contains(t, out.String(), `"line_start": 3`)
	assert.Contains(t, out.String(), `"name": "Service"`)
	assert.Contains(t, out.String(), "File not found: "+filepath.Join(root, "missing.py"))

	cmd, _ = newTestRootCmd(t, "--strict-exit", "hunks", "--patch", patch, "--root", root)
	require.EqualError(t, cmd.Execute(), "1 file(s) could not be read")

	cmd, out = newTestRootCmd(t, "--exclude", "missing.py", "hunks", "--patch", patch, "--root", root)
	require.NoError(t, cmd.Execute())
	assert.NotContains(t, out.String(), "missing.py")
}

func TestHunksCmd_Base(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "mod.py.orig")
	target := filepath.Join(dir, "mod.py")
	require.NoError(t, os.WriteFile(base, []byte("def f():\n    return 1\n"), 0o644))
	require.NoError(t, os.WriteFile(target, []byte("def f():\n    x = 1\n    return x\n"), 0o644))

	cmd, out := newTestRootCmd(t, "hunks", target, "--base", base, "--parallel", "2")
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), `"type": "FunctionDef"`)
	assert.Contains(t, out.String(), `"name": "f"`)
}

func TestHunksCmd_NoInput(t *testing.T) {
	cmd, _ := newTestRootCmd(t, "hunks")
	require.Error(t, cmd.Execute())
}

func TestUnreadableFilesError(t *testing.T) {
	require.NoError(t, unreadableFilesError(nil))
	require.NoError(t, unreadableFilesError([]m.FileHunks{{Path: "a.py"}}))
	assert.EqualError(t,
		unreadableFilesError([]m.FileHunks{{Path: "a.py", Error: "File not found: a.py"}, {Path: "b.py", Error: "x"}}),
		"2 file(s) could not be read")
}
