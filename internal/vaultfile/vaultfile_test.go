package vaultfile

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/passlock/internal/common"
	"github.com/dmitrijs2005/passlock/internal/cryptox"
	"github.com/dmitrijs2005/passlock/internal/models"
)

func vaultPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "vault.plk")
}

func TestInitializeUnlock_RoundTrip(t *testing.T) {
	path := vaultPath(t)

	require.NoError(t, Initialize(path, []byte("Tr0ub4dor&3")))

	key, body, err := Unlock(path, []byte("Tr0ub4dor&3"))
	require.NoError(t, err)
	defer cryptox.Wipe(key)

	require.Len(t, key, cryptox.KeySize)
	require.Equal(t, models.SchemaVersion, body.Schema)
	require.Empty(t, body.List())
}

func TestInitialize_CreatesMissingParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "vault.plk")

	require.NoError(t, Initialize(path, []byte("passphrase")))

	_, _, err := Unlock(path, []byte("passphrase"))
	require.NoError(t, err)
}

func TestInitializeUnlock_WipePassphraseBuffer(t *testing.T) {
	path := vaultPath(t)

	requireWiped := func(t *testing.T, b []byte) {
		t.Helper()
		for i := range b {
			require.Zero(t, b[i], "byte %d not wiped", i)
		}
	}

	pw := []byte("Tr0ub4dor&3")
	require.NoError(t, Initialize(path, pw))
	requireWiped(t, pw)

	pw = []byte("Tr0ub4dor&3")
	_, _, err := Unlock(path, pw)
	require.NoError(t, err)
	requireWiped(t, pw)

	// Failure paths wipe too.
	pw = []byte("wrong")
	_, _, err = Unlock(path, pw)
	require.ErrorIs(t, err, common.ErrWrongPassphrase)
	requireWiped(t, pw)

	pw = []byte("again")
	require.ErrorIs(t, Initialize(path, pw), common.ErrAlreadyExists)
	requireWiped(t, pw)
}

func TestInitialize_FailsOnExistingFile(t *testing.T) {
	path := vaultPath(t)
	require.NoError(t, Initialize(path, []byte("passphrase")))

	err := Initialize(path, []byte("passphrase"))
	require.ErrorIs(t, err, common.ErrAlreadyExists)
}

func TestUnlock_WrongPassphrase(t *testing.T) {
	path := vaultPath(t)
	require.NoError(t, Initialize(path, []byte("Tr0ub4dor&3")))

	_, _, err := Unlock(path, []byte("wrong"))
	require.ErrorIs(t, err, common.ErrWrongPassphrase)
}

func TestUnlock_MissingFile(t *testing.T) {
	_, _, err := Unlock(vaultPath(t), []byte("passphrase"))
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestUnlock_CorruptHeader(t *testing.T) {
	path := vaultPath(t)
	require.NoError(t, Initialize(path, []byte("passphrase")))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func([]byte) []byte
	}{
		{"truncated", func(b []byte) []byte { return b[:headerSize-1] }},
		{"bad magic", func(b []byte) []byte {
			out := append([]byte(nil), b...)
			out[0] = 'X'
			return out
		}},
		{"unknown version", func(b []byte) []byte {
			out := append([]byte(nil), b...)
			out[len(magic)] = 0x7f
			return out
		}},
		{"empty file", func([]byte) []byte { return nil }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := filepath.Join(t.TempDir(), "corrupt.plk")
			require.NoError(t, os.WriteFile(p, tc.mutate(raw), 0o600))

			_, _, err := Unlock(p, []byte("passphrase"))
			require.ErrorIs(t, err, common.ErrCorruptFile)
		})
	}
}

func TestUnlock_TamperedCiphertextIsWrongPassphrase(t *testing.T) {
	path := vaultPath(t)
	require.NoError(t, Initialize(path, []byte("passphrase")))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	raw[len(raw)-1] ^= 0xff
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	_, _, err = Unlock(path, []byte("passphrase"))
	require.ErrorIs(t, err, common.ErrWrongPassphrase)
}

func TestPersist_RecordSurvivesRewrite(t *testing.T) {
	path := vaultPath(t)
	require.NoError(t, Initialize(path, []byte("Tr0ub4dor&3")))

	key, body, err := Unlock(path, []byte("Tr0ub4dor&3"))
	require.NoError(t, err)
	defer cryptox.Wipe(key)

	a, err := body.Add(models.Fields{Name: "GitHub", Secret: "abc123"})
	require.NoError(t, err)
	require.NoError(t, Persist(path, key, body))

	key2, body2, err := Unlock(path, []byte("Tr0ub4dor&3"))
	require.NoError(t, err)
	defer cryptox.Wipe(key2)

	list := body2.List()
	require.Len(t, list, 1)
	require.Equal(t, "GitHub", list[0].Name)
	require.Equal(t, "abc123", list[0].Secret)
	require.Equal(t, a.ID, list[0].ID)
}

func TestPersist_GeneratesFreshNonce(t *testing.T) {
	path := vaultPath(t)
	require.NoError(t, Initialize(path, []byte("passphrase")))

	key, body, err := Unlock(path, []byte("passphrase"))
	require.NoError(t, err)
	defer cryptox.Wipe(key)

	n1, err := ReadHeaderNonce(path)
	require.NoError(t, err)

	require.NoError(t, Persist(path, key, body))
	n2, err := ReadHeaderNonce(path)
	require.NoError(t, err)

	require.NoError(t, Persist(path, key, body))
	n3, err := ReadHeaderNonce(path)
	require.NoError(t, err)

	require.NotEqual(t, n1, n2)
	require.NotEqual(t, n2, n3)
	require.NotEqual(t, n1, n3)
}

func TestPersist_KeepsSaltStable(t *testing.T) {
	path := vaultPath(t)
	require.NoError(t, Initialize(path, []byte("passphrase")))

	key, body, err := Unlock(path, []byte("passphrase"))
	require.NoError(t, err)
	defer cryptox.Wipe(key)

	raw1, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, Persist(path, key, body))
	raw2, err := os.ReadFile(path)
	require.NoError(t, err)

	saltOff := len(magic) + 1
	require.Equal(t, raw1[saltOff:saltOff+cryptox.SaltSize], raw2[saltOff:saltOff+cryptox.SaltSize])
}

func TestPersist_CrashBeforeRenameLeavesOriginalIntact(t *testing.T) {
	path := vaultPath(t)
	require.NoError(t, Initialize(path, []byte("passphrase")))

	key, body, err := Unlock(path, []byte("passphrase"))
	require.NoError(t, err)
	defer cryptox.Wipe(key)

	before, err := os.ReadFile(path)
	require.NoError(t, err)

	orig := renameFile
	renameFile = func(oldpath, newpath string) error {
		return errors.New("simulated crash before rename")
	}
	t.Cleanup(func() { renameFile = orig })

	_, err = body.Add(models.Fields{Name: "GitHub", Secret: "abc123"})
	require.NoError(t, err)
	require.Error(t, Persist(path, key, body))

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, before, after, "failed persist must leave the original bytes untouched")

	// The aborted temp file must not linger next to the vault.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestInitialize_SetsOwnerOnlyPermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file mode bits are not meaningful on windows")
	}

	path := vaultPath(t)
	require.NoError(t, Initialize(path, []byte("passphrase")))

	st, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, fileMode, st.Mode().Perm())
}

func TestExportImport_IndependentPassphrase(t *testing.T) {
	path := vaultPath(t)
	require.NoError(t, Initialize(path, []byte("vault-pass")))

	key, body, err := Unlock(path, []byte("vault-pass"))
	require.NoError(t, err)
	defer cryptox.Wipe(key)

	a, err := body.Add(models.Fields{Name: "GitHub", Secret: "abc123"})
	require.NoError(t, err)

	exportPath := filepath.Join(t.TempDir(), "backup.plk")
	require.NoError(t, Export(exportPath, []byte("export-pass"), body))

	// The export passphrase, not the vault passphrase, opens the copy.
	_, err = Import(exportPath, []byte("vault-pass"))
	require.ErrorIs(t, err, common.ErrWrongPassphrase)

	imported, err := Import(exportPath, []byte("export-pass"))
	require.NoError(t, err)

	list := imported.List()
	require.Len(t, list, 1)
	require.Equal(t, a.ID, list[0].ID)
	require.Equal(t, "abc123", list[0].Secret)
}

func TestExport_UsesFreshSalt(t *testing.T) {
	path := vaultPath(t)
	require.NoError(t, Initialize(path, []byte("passphrase")))

	key, body, err := Unlock(path, []byte("passphrase"))
	require.NoError(t, err)
	defer cryptox.Wipe(key)

	exportPath := filepath.Join(t.TempDir(), "backup.plk")
	require.NoError(t, Export(exportPath, []byte("passphrase"), body))

	orig, err := os.ReadFile(path)
	require.NoError(t, err)
	exported, err := os.ReadFile(exportPath)
	require.NoError(t, err)

	saltOff := len(magic) + 1
	require.NotEqual(t, orig[saltOff:saltOff+cryptox.SaltSize], exported[saltOff:saltOff+cryptox.SaltSize])
}
