// Package db loads the reference artifacts an evaluation run depends
// on — the canonical role list, the trained per-role classifiers and
// the completeness group table — from a SQLite database produced by the
// offline training pipeline. Everything is loaded up front; a corrupt
// artifact aborts before any genome is processed.
package db

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/yumyai/genoqc/internal/util"
	"github.com/yumyai/genoqc/logger"
	"github.com/yumyai/genoqc/pkg/model"
)

type RefDB struct {
	sqlDB *sql.DB
}

// Open connects to the reference database. The file must already exist;
// the sql driver would otherwise create an empty one and every load
// below would fail with a confusing missing-table error.
func Open(path string) (*RefDB, error) {

	if !util.FileExists(path) {
		return nil, fmt.Errorf("reference database %s does not exist", path)
	}

	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open reference database %s: %w", path, err)
	}

	return &RefDB{sqlDB: sqlDB}, nil
}

func (r *RefDB) Close() error {
	return r.sqlDB.Close()
}

// LoadRegistry loads the role map, classifiers and completeness groups
// into a registry for one run. A missing role_groups table is a valid
// state (completeness scoring disabled); anything malformed is fatal.
func (r *RefDB) LoadRegistry(ctx context.Context) (*model.Registry, error) {

	roles, err := r.loadRoles(ctx)
	if err != nil {
		return nil, err
	}

	classifiers, err := r.loadClassifiers(ctx, roles)
	if err != nil {
		return nil, err
	}

	groups, err := r.loadGroups(ctx, roles)
	if err != nil {
		return nil, err
	}

	return &model.Registry{
		Roles:       roles,
		Classifiers: classifiers,
		Groups:      groups,
	}, nil
}

func (r *RefDB) loadRoles(ctx context.Context) (*model.RoleMap, error) {

	qstring := `SELECT role_id, description FROM roles ORDER BY role_idx`

	stm, err := r.sqlDB.PrepareContext(ctx, qstring)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare role query: %w", err)
	}
	defer stm.Close()

	rows, err := stm.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query roles: %w", err)
	}
	defer rows.Close()

	var ids, descriptions []string
	for rows.Next() {
		var id, desc string
		if err := rows.Scan(&id, &desc); err != nil {
			return nil, fmt.Errorf("failed to scan role row: %w", err)
		}
		ids = append(ids, id)
		descriptions = append(descriptions, desc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("role query failed: %w", err)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("reference database has no roles")
	}

	return model.NewRoleMap(ids, descriptions)
}

func (r *RefDB) loadClassifiers(ctx context.Context, roles *model.RoleMap) (map[int]model.Classifier, error) {

	qstring := `SELECT role_id, model FROM classifiers`

	rows, err := r.sqlDB.QueryContext(ctx, qstring)
	if err != nil {
		return nil, fmt.Errorf("failed to query classifiers: %w", err)
	}
	defer rows.Close()

	classifiers := make(map[int]model.Classifier)
	for rows.Next() {
		var roleID string
		var blob []byte
		if err := rows.Scan(&roleID, &blob); err != nil {
			return nil, fmt.Errorf("failed to scan classifier row: %w", err)
		}

		col, ok := roles.Column(roleID)
		if !ok {
			return nil, fmt.Errorf("classifier for unknown role %s", roleID)
		}

		forest, err := model.ParseForest(blob)
		if err != nil {
			return nil, fmt.Errorf("classifier for role %s: %w", roleID, err)
		}
		classifiers[col] = forest
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("classifier query failed: %w", err)
	}

	return classifiers, nil
}

func (r *RefDB) loadGroups(ctx context.Context, roles *model.RoleMap) ([]*model.UniversalRoleGroup, error) {

	ok, err := r.tableExists(ctx, "role_groups")
	if err != nil {
		return nil, err
	}
	if !ok {
		logger.Warn("Reference database has no role_groups table, completeness scoring disabled")
		return nil, nil
	}

	qstring := `SELECT group_id, name, min_score, seed_prot FROM role_groups ORDER BY group_id`

	rows, err := r.sqlDB.QueryContext(ctx, qstring)
	if err != nil {
		return nil, fmt.Errorf("failed to query role groups: %w", err)
	}
	defer rows.Close()

	var groups []*model.UniversalRoleGroup
	var groupIDs []int
	hasRoot := false
	for rows.Next() {
		var groupID, minScore int
		var name, seedProt string
		if err := rows.Scan(&groupID, &name, &minScore, &seedProt); err != nil {
			return nil, fmt.Errorf("failed to scan role group row: %w", err)
		}
		if minScore < 0 {
			return nil, fmt.Errorf("role group %s has negative threshold %d", name, minScore)
		}
		if minScore == 0 {
			hasRoot = true
		}

		groups = append(groups, &model.UniversalRoleGroup{
			Name:     name,
			MinScore: minScore,
			Profile:  model.NewKmerProfile(seedProt),
		})
		groupIDs = append(groupIDs, groupID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("role group query failed: %w", err)
	}

	if len(groups) == 0 {
		logger.Warn("Reference database has an empty role_groups table, completeness scoring disabled")
		return nil, nil
	}
	if !hasRoot {
		return nil, fmt.Errorf("role group table has no root group (min_score 0)")
	}

	for i, g := range groups {
		markers, err := r.loadMarkers(ctx, groupIDs[i], roles)
		if err != nil {
			return nil, fmt.Errorf("role group %s: %w", g.Name, err)
		}
		g.Markers = markers
	}

	logger.Info("Loaded completeness reference table", zap.Int("groups", len(groups)))

	return groups, nil
}

func (r *RefDB) loadMarkers(ctx context.Context, groupID int, roles *model.RoleMap) ([]string, error) {

	qstring := `SELECT role_id FROM group_markers WHERE group_id = ?`

	rows, err := r.sqlDB.QueryContext(ctx, qstring, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to query markers: %w", err)
	}
	defer rows.Close()

	var markers []string
	for rows.Next() {
		var roleID string
		if err := rows.Scan(&roleID); err != nil {
			return nil, fmt.Errorf("failed to scan marker row: %w", err)
		}
		if _, ok := roles.Column(roleID); !ok {
			return nil, fmt.Errorf("marker %s is not in the canonical role list", roleID)
		}
		markers = append(markers, roleID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("marker query failed: %w", err)
	}

	return markers, nil
}

func (r *RefDB) tableExists(ctx context.Context, name string) (bool, error) {
	qstring := `SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = ?`

	var n int
	if err := r.sqlDB.QueryRowContext(ctx, qstring, name).Scan(&n); err != nil {
		return false, fmt.Errorf("failed to inspect schema: %w", err)
	}
	return n > 0, nil
}
