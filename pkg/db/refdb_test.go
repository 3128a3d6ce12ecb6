package db

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/yumyai/genoqc/pkg/model"
)

const testSchema = `
	CREATE TABLE roles (role_idx INTEGER, role_id TEXT, description TEXT);
	CREATE TABLE classifiers (role_id TEXT, model TEXT);
	CREATE TABLE role_groups (group_id INTEGER, name TEXT, min_score INTEGER, seed_prot TEXT);
	CREATE TABLE group_markers (group_id INTEGER, role_id TEXT);
`

const testForest = `{
	"role_id": "R1",
	"classes": 2,
	"features": 2,
	"trees": [[
		{"feat": 0, "thresh": 0.5, "left": 1, "right": 2, "class": -1},
		{"feat": 0, "thresh": 0, "left": -1, "right": -1, "class": 0},
		{"feat": 0, "thresh": 0, "left": -1, "right": -1, "class": 1}
	]]
}`

// newTestDB builds a reference database on disk and returns its path.
func newTestDB(t *testing.T, statements ...string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "refdata.db")

	raw, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	defer raw.Close()

	for _, stm := range statements {
		if _, err := raw.Exec(stm); err != nil {
			t.Fatalf("failed to execute %q: %v", stm, err)
		}
	}

	return path
}

func seedStatements() []string {
	return []string{
		testSchema,
		`INSERT INTO roles VALUES (0, 'R1', 'Alanine racemase (EC 5.1.1.1)')`,
		`INSERT INTO roles VALUES (1, 'R2', 'Phenylalanyl-tRNA synthetase alpha chain')`,
		`INSERT INTO roles VALUES (2, 'R3', 'DNA gyrase subunit A')`,
		`INSERT INTO classifiers VALUES ('R1', '` + testForest + `')`,
		`INSERT INTO role_groups VALUES (1, 'root', 0, '')`,
		`INSERT INTO role_groups VALUES (2, 'Enterobacteriaceae', 90, 'MSHLAELVASAKAARDIQDA')`,
		`INSERT INTO group_markers VALUES (1, 'R2')`,
		`INSERT INTO group_markers VALUES (2, 'R2')`,
		`INSERT INTO group_markers VALUES (2, 'R3')`,
	}
}

func TestLoadRegistry(t *testing.T) {

	ref, err := Open(newTestDB(t, seedStatements()...))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer ref.Close()

	registry, err := ref.LoadRegistry(context.Background())
	if err != nil {
		t.Fatalf("LoadRegistry failed: %v", err)
	}

	if registry.Roles.Len() != 3 {
		t.Errorf("role map has %d roles, want 3", registry.Roles.Len())
	}
	if col, ok := registry.Roles.Column("R3"); !ok || col != 2 {
		t.Errorf("Column(R3) = %d, %t", col, ok)
	}

	if len(registry.Classifiers) != 1 {
		t.Fatalf("%d classifiers, want 1", len(registry.Classifiers))
	}
	c, ok := registry.Classifiers[0]
	if !ok {
		t.Fatal("classifier for column 0 (R1) is missing")
	}
	if c.Classes() != 2 {
		t.Errorf("Classes() = %d, want 2", c.Classes())
	}

	if len(registry.Groups) != 2 {
		t.Fatalf("%d groups, want 2", len(registry.Groups))
	}
	if registry.Groups[0].Name != "root" || registry.Groups[0].MinScore != 0 {
		t.Errorf("first group = %+v, want the root group", registry.Groups[0])
	}
	if got := registry.Groups[1].Markers; len(got) != 2 {
		t.Errorf("Enterobacteriaceae markers = %v, want 2", got)
	}
}

func TestLoadRegistryWithoutGroups(t *testing.T) {

	ref, err := Open(newTestDB(t,
		`CREATE TABLE roles (role_idx INTEGER, role_id TEXT, description TEXT)`,
		`CREATE TABLE classifiers (role_id TEXT, model TEXT)`,
		`INSERT INTO roles VALUES (0, 'R1', 'Alanine racemase')`,
	))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer ref.Close()

	registry, err := ref.LoadRegistry(context.Background())
	if err != nil {
		t.Fatalf("LoadRegistry failed: %v", err)
	}

	// Completeness scoring is simply disabled for the run.
	if registry.Groups != nil {
		t.Errorf("Groups = %v, want nil", registry.Groups)
	}
}

func TestLoadRegistryFailsFast(t *testing.T) {

	tests := []struct {
		name       string
		statements []string
	}{
		{
			name:       "NoRoles",
			statements: []string{testSchema},
		},
		{
			name: "CorruptClassifier",
			statements: []string{
				testSchema,
				`INSERT INTO roles VALUES (0, 'R1', 'Alanine racemase')`,
				`INSERT INTO classifiers VALUES ('R1', 'not a model')`,
			},
		},
		{
			name: "ClassifierForUnknownRole",
			statements: []string{
				testSchema,
				`INSERT INTO roles VALUES (0, 'R1', 'Alanine racemase')`,
				`INSERT INTO classifiers VALUES ('R9', '` + testForest + `')`,
			},
		},
		{
			name: "MarkerOutsideRoleList",
			statements: []string{
				testSchema,
				`INSERT INTO roles VALUES (0, 'R1', 'Alanine racemase')`,
				`INSERT INTO role_groups VALUES (1, 'root', 0, '')`,
				`INSERT INTO group_markers VALUES (1, 'R9')`,
			},
		},
		{
			name: "NoRootGroup",
			statements: []string{
				testSchema,
				`INSERT INTO roles VALUES (0, 'R1', 'Alanine racemase')`,
				`INSERT INTO role_groups VALUES (1, 'tight', 90, 'MSHLAELVASA')`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := Open(newTestDB(t, tt.statements...))
			if err != nil {
				t.Fatalf("Open failed: %v", err)
			}
			defer ref.Close()

			if _, err := ref.LoadRegistry(context.Background()); err == nil {
				t.Error("expected LoadRegistry to fail")
			}
		})
	}
}

func TestOpenRequiresExistingFile(t *testing.T) {

	if _, err := Open(filepath.Join(t.TempDir(), "missing.db")); err == nil {
		t.Error("expected an error for a missing reference database")
	}
}

// The loaded registry drives the evaluator directly.
func TestRegistryRoundTrip(t *testing.T) {

	ref, err := Open(newTestDB(t, seedStatements()...))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer ref.Close()

	registry, err := ref.LoadRegistry(context.Background())
	if err != nil {
		t.Fatalf("LoadRegistry failed: %v", err)
	}

	genomes := []*model.Genome{{
		ID:      "300.3",
		Name:    "Test organism",
		Domain:  "Bacteria",
		Contigs: []model.Contig{{ID: "c1", Length: 1200}},
		Features: []model.Feature{
			{ID: "f1", Type: "CDS", Function: "Phenylalanyl-tRNA synthetase alpha chain", Protein: "MSHLAELVASAKAARDIQDA"},
			{ID: "f2", Type: "CDS", Function: "DNA gyrase subunit A"},
		},
	}}

	res, err := model.Evaluate(context.Background(), registry, genomes, model.Options{})
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}

	rpt := res.Reports[0]
	if rpt.ConsistentCount != 1 {
		t.Errorf("ConsistentCount = %d, want 1 (one classifier)", rpt.ConsistentCount)
	}
	if !rpt.HasCompleteness() {
		t.Error("expected a completeness group assignment")
	}
}
