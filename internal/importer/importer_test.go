package importer

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clientbook/clientbook/internal/clients"
	"github.com/clientbook/clientbook/internal/config"
	"github.com/clientbook/clientbook/internal/export"
	"github.com/clientbook/clientbook/internal/model"
	"github.com/clientbook/clientbook/internal/store"
	"github.com/clientbook/clientbook/internal/validation"
)

// fakeClients is an in-memory ClientCreator.
type fakeClients struct {
	created   []validation.ClientInput
	createErr error
}

func (f *fakeClients) FindID(_ context.Context, last, first, phone string) (uint, bool, error) {
	for i, in := range f.created {
		if in.LastName == last && in.FirstName == first && in.Phone == phone {
			return uint(i + 1), true, nil
		}
	}
	return 0, false, nil
}

func (f *fakeClients) Create(_ context.Context, in validation.ClientInput) (*model.Client, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, in)
	return &model.Client{ID: uint(len(f.created)), LastName: in.LastName}, nil
}

func TestLegacyParser_Parse(t *testing.T) {
	f, err := os.Open("../../testdata/clients_legacy.csv")
	require.NoError(t, err)
	defer f.Close()

	rows, err := LegacyParser().Parse(f)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, 2, rows[0].Line)
	assert.Equal(t, "Benali", rows[0].Form.LastName)
	assert.Equal(t, "0555 12 34 56", rows[0].Form.Phone)
	assert.Equal(t, "1500.00", rows[0].Form.Balance)
	assert.Equal(t, "IFU", rows[0].Form.TaxRegime)

	assert.Equal(t, 3, rows[1].Line)
	assert.Equal(t, "dossier complet, à relancer", rows[1].Form.Notes)
	assert.Equal(t, "3500.50", rows[1].Form.MonthlyFee)

	// the empty line and the all-blank row are skipped
	assert.Equal(t, 6, rows[2].Line)
	assert.Equal(t, 7, rows[3].Line)
}

func TestParser_MissingLastNameColumn(t *testing.T) {
	_, err := ExportParser().Parse(strings.NewReader("first_name,phone\nKarim,0555\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `missing "last_name" column`)
}

func TestParser_Empty(t *testing.T) {
	rows, err := LegacyParser().Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestParser_HeaderCaseAndBOM(t *testing.T) {
	rows, err := LegacyParser().Parse(strings.NewReader("\ufeffNOM, Prenom\nHaddad, Samir\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Haddad", rows[0].Form.LastName)
	assert.Equal(t, "Samir", rows[0].Form.FirstName)
}

func TestRegistry(t *testing.T) {
	r := DefaultRegistry()
	assert.Equal(t, []string{"clientbook", "legacy"}, r.Formats())
	assert.NotNil(t, r.Get("Legacy"))
	assert.Nil(t, r.Get("chase"))

	assert.Panics(t, func() { r.Register(LegacyParser()) })
}

func TestImport_CreatesSkipsAndCollectsFailures(t *testing.T) {
	fake := &fakeClients{}
	im := New(fake)

	res, err := im.ImportFile(context.Background(), LegacyParser(), "../../testdata/clients_legacy.csv")
	require.NoError(t, err)

	assert.Equal(t, []uint{1, 2}, res.Created)
	assert.Equal(t, []int{7}, res.Skipped)
	require.Len(t, res.Failed, 1)
	assert.Equal(t, 6, res.Failed[0].Line)
	assert.ErrorIs(t, res.Failed[0].Err, validation.ErrValidation)
	assert.Contains(t, res.Failed[0].Error(), "line 6:")

	require.Len(t, fake.created, 2)
	assert.True(t, fake.created[1].Balance.Equal(decimal.RequireFromString("250.75")))
}

func TestImport_StoreFailureAborts(t *testing.T) {
	boom := errors.New("database is locked")
	im := New(&fakeClients{createErr: boom})

	_, err := im.Import(context.Background(), ExportParser(), strings.NewReader("last_name\nKaci\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "line 2")
}

func TestImportFile_Missing(t *testing.T) {
	_, err := New(&fakeClients{}).ImportFile(context.Background(), ExportParser(), filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestExportThenImport(t *testing.T) {
	ctx := context.Background()
	st, err := store.Open(config.DatabaseConfig{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "import.db")})
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.Migrate(ctx))

	src := []model.Client{
		{ID: 7, LastName: "Saidi", FirstName: "Nour", Phone: "0661 00 00 01", Balance: decimal.RequireFromString("42.10"), Notes: "a, b"},
		{ID: 8, LastName: "Zerrouki", MonthlyFee: decimal.RequireFromString("900")},
	}
	var buf bytes.Buffer
	require.NoError(t, export.WriteClients(&buf, src))

	svc := clients.NewService(st)
	res, err := New(svc).Import(ctx, ExportParser(), bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Len(t, res.Created, 2)
	assert.Empty(t, res.Failed)

	got, err := svc.List(ctx, clients.ListParams{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Saidi", got[0].LastName)
	assert.Equal(t, "a, b", got[0].Notes)
	assert.Equal(t, "42.10", got[0].Balance.StringFixed(2))
	assert.Equal(t, "900.00", got[1].MonthlyFee.StringFixed(2))

	// a second run finds every client by natural key
	res, err = New(svc).Import(ctx, ExportParser(), bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Empty(t, res.Created)
	assert.Equal(t, []int{2, 3}, res.Skipped)
}
