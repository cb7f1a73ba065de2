// Package reconcile matches extracted identities against the existing client
// and agent directory. Directory failures are logged and treated as "not found".
package reconcile

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/joseph-ayodele/policy-intake/internal/entity"
	"github.com/joseph-ayodele/policy-intake/internal/normalize"
)

// ClientDirectory looks up existing clients. A nil ref with nil error means no match.
type ClientDirectory interface {
	FindByTaxID(ctx context.Context, taxID string) (*entity.ClientRef, error)
	FindByNationalID(ctx context.Context, nationalID string) (*entity.ClientRef, error)
	FindByName(ctx context.Context, givenName, paternalSurname string) ([]entity.ClientRef, error)
}

// AgentDirectory exposes the team roster and each member's registered agent codes.
type AgentDirectory interface {
	ListTeam(ctx context.Context) ([]entity.TeamMember, error)
	ListRegisteredCodes(ctx context.Context, memberID string) ([]string, error)
}

// ClientQuery carries the identity fields used for client matching.
type ClientQuery struct {
	TaxID           string
	NationalID      string
	GivenName       string
	PaternalSurname string
	MaternalSurname string
}

// QueryFromRecord builds a ClientQuery from a normalized record.
func QueryFromRecord(rec entity.PolicyRecord) ClientQuery {
	return ClientQuery{
		TaxID:           rec.TaxID,
		NationalID:      rec.NationalID,
		GivenName:       rec.GivenName,
		PaternalSurname: rec.PaternalSurname,
		MaternalSurname: rec.MaternalSurname,
	}
}

// AgentMatch is the agent side of reconciliation.
type AgentMatch struct {
	Agent                 *entity.AgentRef
	CodeAlreadyRegistered bool
}

type Reconciler struct {
	clients ClientDirectory
	agents  AgentDirectory
	logger  *slog.Logger
}

func New(clients ClientDirectory, agents AgentDirectory, logger *slog.Logger) *Reconciler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler{clients: clients, agents: agents, logger: logger}
}

// MatchClient searches tax id, then national id, then name; the first tier with
// a hit wins. Nil means "new client candidate".
func (r *Reconciler) MatchClient(ctx context.Context, q ClientQuery) *entity.ClientRef {
	if r.clients == nil {
		return nil
	}

	if taxID := normalize.TaxID(q.TaxID); taxID != "" {
		ref, err := r.clients.FindByTaxID(ctx, taxID)
		if err != nil {
			r.logger.Warn("reconcile.client.tax_id_lookup_failed", "error", err)
		} else if ref != nil {
			r.logger.Debug("reconcile.client.matched", "tier", "tax_id", "client_id", ref.ID)
			return ref
		}
	}

	if nid := strings.ToUpper(strings.TrimSpace(q.NationalID)); nid != "" {
		ref, err := r.clients.FindByNationalID(ctx, nid)
		if err != nil {
			r.logger.Warn("reconcile.client.national_id_lookup_failed", "error", err)
		} else if ref != nil {
			r.logger.Debug("reconcile.client.matched", "tier", "national_id", "client_id", ref.ID)
			return ref
		}
	}

	given, paternal := strings.TrimSpace(q.GivenName), strings.TrimSpace(q.PaternalSurname)
	if given == "" || paternal == "" {
		return nil
	}
	candidates, err := r.clients.FindByName(ctx, given, paternal)
	if err != nil {
		r.logger.Warn("reconcile.client.name_lookup_failed", "error", err)
		return nil
	}
	for i := range candidates {
		if nameMatches(q, candidates[i]) {
			r.logger.Debug("reconcile.client.matched", "tier", "name", "client_id", candidates[i].ID)
			return &candidates[i]
		}
	}
	return nil
}

// nameMatches compares folded names; maternal surnames only count when both
// sides have one.
func nameMatches(q ClientQuery, c entity.ClientRef) bool {
	if normalize.NameKey(q.GivenName) != normalize.NameKey(c.GivenName) ||
		normalize.NameKey(q.PaternalSurname) != normalize.NameKey(c.PaternalSurname) {
		return false
	}
	qm, cm := normalize.NameKey(q.MaternalSurname), normalize.NameKey(c.MaternalSurname)
	if qm != "" && cm != "" {
		return qm == cm
	}
	return true
}

// MatchAgent finds an active agent whose short name or full name equals name
// after folding. When matched and code is non-empty it reports whether the code
// is already registered for that agent.
func (r *Reconciler) MatchAgent(ctx context.Context, name, code string) AgentMatch {
	key := normalize.NameKey(name)
	if key == "" || r.agents == nil {
		return AgentMatch{}
	}

	team, err := r.agents.ListTeam(ctx)
	if err != nil {
		r.logger.Warn("reconcile.agent.roster_failed", "error", err)
		return AgentMatch{}
	}

	var hit *entity.TeamMember
	for i := range team {
		m := team[i]
		if !m.Active || !strings.EqualFold(m.Role, entity.RoleAgent) {
			continue
		}
		if normalize.NameKey(m.ShortName) == key || normalize.NameKey(m.FullName()) == key {
			hit = &team[i]
			break
		}
	}
	if hit == nil {
		return AgentMatch{}
	}

	out := AgentMatch{Agent: &entity.AgentRef{ID: hit.ID, ShortName: hit.ShortName, FullName: hit.FullName()}}
	code = strings.TrimSpace(code)
	if code == "" {
		return out
	}
	codes, err := r.agents.ListRegisteredCodes(ctx, hit.ID)
	if err != nil {
		r.logger.Warn("reconcile.agent.codes_failed", "agent_id", hit.ID, "error", err)
		return out
	}
	out.CodeAlreadyRegistered = slices.ContainsFunc(codes, func(c string) bool {
		return strings.EqualFold(strings.TrimSpace(c), code)
	})
	return out
}

// Reconcile runs client and agent matching for one record.
func (r *Reconciler) Reconcile(ctx context.Context, rec entity.PolicyRecord) (*entity.ClientRef, AgentMatch) {
	client := r.MatchClient(ctx, QueryFromRecord(rec))
	agent := r.MatchAgent(ctx, rec.AgentName, rec.AgentCode)
	r.logger.Info("reconcile.done",
		"client_matched", client != nil,
		"agent_matched", agent.Agent != nil,
		"agent_code_registered", agent.CodeAlreadyRegistered,
	)
	return client, agent
}
