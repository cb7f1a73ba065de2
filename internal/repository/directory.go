package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/joseph-ayodele/policy-intake/internal/entity"
	"github.com/joseph-ayodele/policy-intake/internal/normalize"
)

const (
	tableClients     = "clients"
	tableTeamMembers = "team_members"
	tableAgentCodes  = "agent_codes"
)

var clientColumns = []string{
	"id", "persona_type", "given_name", "paternal_surname", "maternal_surname",
	"legal_name", "tax_id", "national_id",
}

var memberColumns = []string{
	"id", "role", "active", "short_name", "given_name", "paternal_surname", "maternal_surname",
}

// Directory is the SQL client/agent directory. It satisfies the reconcile
// ClientDirectory and AgentDirectory interfaces.
type Directory struct {
	db *DB
}

func NewDirectory(db *DB) *Directory {
	return &Directory{db: db}
}

func (r *Directory) builder() *entsql.DialectBuilder {
	return entsql.Dialect(r.db.Dialect())
}

func (r *Directory) FindByTaxID(ctx context.Context, taxID string) (*entity.ClientRef, error) {
	return r.findOneClient(ctx, entsql.EQ("tax_id", normalize.TaxID(taxID)))
}

func (r *Directory) FindByNationalID(ctx context.Context, nationalID string) (*entity.ClientRef, error) {
	return r.findOneClient(ctx, entsql.EQ("national_id", strings.ToUpper(strings.TrimSpace(nationalID))))
}

// FindByName returns clients whose folded given name and paternal surname match.
func (r *Directory) FindByName(ctx context.Context, givenName, paternalSurname string) ([]entity.ClientRef, error) {
	b := r.builder()
	sel := b.Select(clientColumns...).
		From(b.Table(tableClients)).
		Where(entsql.And(
			entsql.EQ("given_key", normalize.NameKey(givenName)),
			entsql.EQ("paternal_key", normalize.NameKey(paternalSurname)),
		)).
		OrderBy("created_at", "id")
	return r.queryClients(ctx, sel)
}

func (r *Directory) findOneClient(ctx context.Context, p *entsql.Predicate) (*entity.ClientRef, error) {
	b := r.builder()
	sel := b.Select(clientColumns...).
		From(b.Table(tableClients)).
		Where(p).
		OrderBy("created_at", "id").
		Limit(1)
	out, err := r.queryClients(ctx, sel)
	if err != nil || len(out) == 0 {
		return nil, err
	}
	return &out[0], nil
}

func (r *Directory) queryClients(ctx context.Context, sel *entsql.Selector) ([]entity.ClientRef, error) {
	query, args := sel.Query()
	var rows entsql.Rows
	if err := r.db.drv.Query(ctx, query, args, &rows); err != nil {
		r.db.logger.Error("repository.clients.query_failed", "error", err)
		return nil, fmt.Errorf("query clients: %w", err)
	}
	defer rows.Close()

	var out []entity.ClientRef
	for rows.Next() {
		var c entity.ClientRef
		if err := rows.Scan(&c.ID, &c.PersonaType, &c.GivenName, &c.PaternalSurname, &c.MaternalSurname,
			&c.LegalName, &c.TaxID, &c.NationalID); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// CreateClient inserts a client and returns it with its generated id.
func (r *Directory) CreateClient(ctx context.Context, c entity.ClientRef) (entity.ClientRef, error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	c.TaxID = normalize.TaxID(c.TaxID)
	c.NationalID = strings.ToUpper(strings.TrimSpace(c.NationalID))

	query, args := r.builder().Insert(tableClients).
		Columns(append(clientColumns, "given_key", "paternal_key")...).
		Values(c.ID, c.PersonaType, c.GivenName, c.PaternalSurname, c.MaternalSurname,
			c.LegalName, c.TaxID, c.NationalID, normalize.NameKey(c.GivenName), normalize.NameKey(c.PaternalSurname)).
		Query()
	if err := r.exec(ctx, query, args); err != nil {
		r.db.logger.Error("repository.clients.create_failed", "tax_id", c.TaxID, "error", err)
		return entity.ClientRef{}, fmt.Errorf("create client: %w", err)
	}
	return c, nil
}

// CreateTeamMember inserts a roster entry.
func (r *Directory) CreateTeamMember(ctx context.Context, m entity.TeamMember) (entity.TeamMember, error) {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query, args := r.builder().Insert(tableTeamMembers).
		Columns(memberColumns...).
		Values(m.ID, m.Role, m.Active, m.ShortName, m.GivenName, m.PaternalSurname, m.MaternalSurname).
		Query()
	if err := r.exec(ctx, query, args); err != nil {
		r.db.logger.Error("repository.team.create_failed", "short_name", m.ShortName, "error", err)
		return entity.TeamMember{}, fmt.Errorf("create team member: %w", err)
	}
	return m, nil
}

// AddAgentCode registers an agent code for a team member.
func (r *Directory) AddAgentCode(ctx context.Context, memberID, code string) error {
	query, args := r.builder().Insert(tableAgentCodes).
		Columns("member_id", "code").
		Values(memberID, strings.TrimSpace(code)).
		Query()
	if err := r.exec(ctx, query, args); err != nil {
		r.db.logger.Error("repository.agent_codes.create_failed", "member_id", memberID, "error", err)
		return fmt.Errorf("add agent code: %w", err)
	}
	return nil
}

func (r *Directory) ListTeam(ctx context.Context) ([]entity.TeamMember, error) {
	b := r.builder()
	query, args := b.Select(memberColumns...).
		From(b.Table(tableTeamMembers)).
		OrderBy("created_at", "id").
		Query()

	var rows entsql.Rows
	if err := r.db.drv.Query(ctx, query, args, &rows); err != nil {
		r.db.logger.Error("repository.team.query_failed", "error", err)
		return nil, fmt.Errorf("list team: %w", err)
	}
	defer rows.Close()

	var out []entity.TeamMember
	for rows.Next() {
		var m entity.TeamMember
		if err := rows.Scan(&m.ID, &m.Role, &m.Active, &m.ShortName, &m.GivenName, &m.PaternalSurname, &m.MaternalSurname); err != nil {
			return nil, fmt.Errorf("scan team member: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *Directory) ListRegisteredCodes(ctx context.Context, memberID string) ([]string, error) {
	b := r.builder()
	query, args := b.Select("code").
		From(b.Table(tableAgentCodes)).
		Where(entsql.EQ("member_id", memberID)).
		OrderBy("code").
		Query()

	var rows entsql.Rows
	if err := r.db.drv.Query(ctx, query, args, &rows); err != nil {
		r.db.logger.Error("repository.agent_codes.query_failed", "member_id", memberID, "error", err)
		return nil, fmt.Errorf("list agent codes: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, fmt.Errorf("scan agent code: %w", err)
		}
		out = append(out, code)
	}
	return out, rows.Err()
}

// Counts reports row counts per directory table.
func (r *Directory) Counts(ctx context.Context) (map[string]int, error) {
	out := make(map[string]int, 3)
	for _, table := range []string{tableClients, tableTeamMembers, tableAgentCodes} {
		b := r.builder()
		query, args := b.Select(entsql.Count("*")).From(b.Table(table)).Query()
		var rows entsql.Rows
		if err := r.db.drv.Query(ctx, query, args, &rows); err != nil {
			return nil, fmt.Errorf("count %s: %w", table, err)
		}
		n, err := entsql.ScanInt(rows)
		_ = rows.Close()
		if err != nil {
			return nil, fmt.Errorf("count %s: %w", table, err)
		}
		out[table] = n
	}
	return out, nil
}

func (r *Directory) exec(ctx context.Context, query string, args []any) error {
	var res sql.Result
	return r.db.drv.Exec(ctx, query, args, &res)
}
