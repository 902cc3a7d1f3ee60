package commands_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clientbook/clientbook/internal/store"
	"github.com/clientbook/clientbook/internal/validation"
)

func addClient(t *testing.T, w *workspace, args ...string) string {
	t.Helper()
	out := w.mustRun(t, append([]string{"client", "add"}, args...)...)
	// "Created client #<id> ..."
	require.True(t, strings.HasPrefix(out, "Created client #"), out)
	return strings.Fields(strings.TrimPrefix(out, "Created client #"))[0]
}

func TestClientAddListShow(t *testing.T) {
	w := newWorkspace(t)
	w.mustRun(t, "init")

	id := addClient(t, w, "--last-name", "Benali", "--first-name", "Karim", "--phone", "0555 12 34 56",
		"--activity", "Boulangerie", "--balance", "1500", "--tax-regime", "IFU")
	addClient(t, w, "--last-name", "Aouadi", "--balance", "20.5")

	list := w.mustRun(t, "client", "list")
	lines := strings.Split(strings.TrimSpace(list), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "BALANCE")
	assert.Contains(t, lines[1], "Aouadi")
	assert.Contains(t, lines[2], "Benali Karim")
	assert.Contains(t, lines[2], "1500.00")

	byBalance := w.mustRun(t, "client", "list", "--sort", "balance")
	lines = strings.Split(strings.TrimSpace(byBalance), "\n")
	assert.Contains(t, lines[1], "Benali")

	found := w.mustRun(t, "client", "list", "--search", "boulang")
	assert.Contains(t, found, "Benali")
	assert.NotContains(t, found, "Aouadi")

	show := w.mustRun(t, "client", "show", id)
	assert.Contains(t, show, "Tax regime:")
	assert.Contains(t, show, "IFU")
	assert.Contains(t, show, "1500.00")
}

func TestClientAdd_ValidationError(t *testing.T) {
	w := newWorkspace(t)
	w.mustRun(t, "init")

	_, _, err := w.run(t, "client", "add", "--first-name", "Karim", "--balance", "-3")
	require.Error(t, err)
	assert.ErrorIs(t, err, validation.ErrValidation)
	assert.Contains(t, err.Error(), "last_name: required")
	assert.Contains(t, err.Error(), "balance: must_not_be_negative")
}

func TestClientEdit_KeepsUnsetFields(t *testing.T) {
	w := newWorkspace(t)
	w.mustRun(t, "init")
	id := addClient(t, w, "--last-name", "Kaci", "--phone", "0770 11 22 33", "--balance", "100", "--notes", "ancien")

	out := w.mustRun(t, "client", "edit", id, "--balance", "80.25", "--notes", "")
	assert.Contains(t, out, "balance 80.25")

	show := w.mustRun(t, "client", "show", id)
	assert.Contains(t, show, "0770 11 22 33")
	assert.Contains(t, show, "80.25")
	assert.NotContains(t, show, "ancien")
}

func TestClientFindOptionsDelete(t *testing.T) {
	w := newWorkspace(t)
	w.mustRun(t, "init")
	id := addClient(t, w, "--last-name", "Saidi", "--first-name", "Nour", "--phone", "0661 00 00 01", "--balance", "300")
	other := addClient(t, w, "--last-name", "Haddad", "--first-name", "Samir")

	out := w.mustRun(t, "client", "find", "--last-name", "Saidi", "--first-name", "Nour", "--phone", "0661 00 00 01")
	assert.Equal(t, id+"\n", out)

	_, _, err := w.run(t, "client", "find", "--last-name", "Saidi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no client named")

	opts := w.mustRun(t, "client", "options")
	lines := strings.Split(strings.TrimSpace(opts), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], other), lines[0])
	assert.Contains(t, lines[0], "Haddad Samir")

	w.mustRun(t, "payment", "add", "--client", id, "--amount", "50", "--type", "espèces")
	w.mustRun(t, "client", "delete", id)

	_, _, err = w.run(t, "client", "show", id)
	assert.ErrorIs(t, err, store.ErrNotFound)

	payments := w.mustRun(t, "payment", "list")
	assert.Equal(t, 1, strings.Count(payments, "\n"))

	_, _, err = w.run(t, "client", "delete", id)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestClientShow_BadID(t *testing.T) {
	w := newWorkspace(t)

	_, _, err := w.run(t, "client", "show", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid id")
}

func TestImportAndExportClients(t *testing.T) {
	w := newWorkspace(t)
	w.mustRun(t, "init")

	out, _, err := w.run(t, "import", "clients", "--format", "legacy", filepath.Join("..", "..", "testdata", "clients_legacy.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 rows rejected")
	assert.Contains(t, out, "Imported 2 clients, skipped 1 existing, rejected 1")
	assert.Contains(t, out, "line 6:")

	exported := filepath.Join(w.dir, "clients.csv")
	w.mustRun(t, "export", "clients", "--out", exported)
	data, err := os.ReadFile(exported)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "id,last_name,first_name"))
	assert.Contains(t, lines[1], "Benali,Karim")
	assert.Contains(t, lines[2], "250.75")

	// re-importing our own export only skips
	again := w.mustRun(t, "import", "clients", exported)
	assert.Contains(t, again, "Imported 0 clients, skipped 2 existing, rejected 0")
}

func TestImport_UnknownFormat(t *testing.T) {
	w := newWorkspace(t)

	_, _, err := w.run(t, "import", "clients", "--format", "chase", "x.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "clientbook, legacy")
}
