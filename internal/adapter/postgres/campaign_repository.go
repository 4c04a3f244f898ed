package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"campaign-manager/internal/core/domain"
	"campaign-manager/internal/core/port"
)

const uniqueViolation = "23505"

// CampaignRepository implements port.CampaignRepository using pgxpool for
// PostgreSQL. The full campaign is stored as a JSONB document; the columns
// next to it are copies used for filtering, aggregation and constraints.
type CampaignRepository struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// NewCampaignRepository returns a new repository instance.
func NewCampaignRepository(pool *pgxpool.Pool) *CampaignRepository {
	return &CampaignRepository{pool: pool, now: time.Now}
}

var _ port.CampaignRepository = (*CampaignRepository)(nil)

// Create inserts a new campaign row.
func (r *CampaignRepository) Create(ctx context.Context, c domain.Campaign) error {
	doc, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal campaign: %w", err)
	}
	_, err = r.pool.Exec(ctx, `
        INSERT INTO campaigns (
            id, organization_id, created_by, title, type, status, priority, tags, member_ids,
            total_budget, spent, remaining, impressions, clicks, conversions,
            start_date, end_date, version, last_modified, created_at, doc)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21)`,
		c.ID, c.OrganizationID, c.CreatedBy, c.Title, string(c.Type), string(c.Status), string(c.Priority), tags(c), memberIDs(c),
		c.Budget.Total, c.Budget.Spent, c.Budget.Remaining,
		c.Performance.Metrics.Impressions, c.Performance.Metrics.Clicks, c.Performance.Metrics.Conversions,
		c.Schedule.StartDate, c.Schedule.EndDate, c.Metadata.Version, c.Metadata.LastModified, c.CreatedAt, doc)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return domain.NewError(domain.ErrConflict, "id", "campaign "+c.ID+" already exists")
	}
	if err != nil {
		return fmt.Errorf("insert campaign: %w", err)
	}
	return nil
}

// Get returns a campaign by organization and id.
func (r *CampaignRepository) Get(ctx context.Context, orgID, id string) (*domain.Campaign, error) {
	var doc []byte
	err := r.pool.QueryRow(ctx, `SELECT doc FROM campaigns WHERE organization_id = $1 AND id = $2`, orgID, id).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.NotFoundError(orgID, id)
	}
	if err != nil {
		return nil, fmt.Errorf("select campaign: %w", err)
	}
	return decode(doc)
}

// Update writes c if the stored version still equals expectedVersion.
func (r *CampaignRepository) Update(ctx context.Context, c domain.Campaign, expectedVersion int64) (*domain.Campaign, error) {
	c.Metadata.Version = expectedVersion + 1
	c.Metadata.LastModified = r.now().UTC()
	doc, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal campaign: %w", err)
	}
	tag, err := r.pool.Exec(ctx, `
        UPDATE campaigns SET
            title = $3, type = $4, status = $5, priority = $6, tags = $7, member_ids = $8,
            total_budget = $9, spent = $10, remaining = $11,
            impressions = $12, clicks = $13, conversions = $14,
            start_date = $15, end_date = $16, version = $17, last_modified = $18, doc = $19
        WHERE organization_id = $1 AND id = $2 AND version = $20`,
		c.OrganizationID, c.ID, c.Title, string(c.Type), string(c.Status), string(c.Priority), tags(c), memberIDs(c),
		c.Budget.Total, c.Budget.Spent, c.Budget.Remaining,
		c.Performance.Metrics.Impressions, c.Performance.Metrics.Clicks, c.Performance.Metrics.Conversions,
		c.Schedule.StartDate, c.Schedule.EndDate, c.Metadata.Version, c.Metadata.LastModified, doc,
		expectedVersion)
	if err != nil {
		return nil, fmt.Errorf("update campaign: %w", err)
	}
	if tag.RowsAffected() == 0 {
		var current int64
		err = r.pool.QueryRow(ctx, `SELECT version FROM campaigns WHERE organization_id = $1 AND id = $2`,
			c.OrganizationID, c.ID).Scan(&current)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NotFoundError(c.OrganizationID, c.ID)
		}
		if err != nil {
			return nil, fmt.Errorf("select campaign version: %w", err)
		}
		return nil, domain.ConflictError(c.ID, expectedVersion, current)
	}
	return &c, nil
}

// Delete removes a campaign.
func (r *CampaignRepository) Delete(ctx context.Context, orgID, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM campaigns WHERE organization_id = $1 AND id = $2`, orgID, id)
	if err != nil {
		return fmt.Errorf("delete campaign: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFoundError(orgID, id)
	}
	return nil
}

// List returns one page of matching campaigns, newest first.
func (r *CampaignRepository) List(ctx context.Context, f port.ListFilter, page port.Page) ([]domain.Campaign, int64, error) {
	page = page.Normalize()
	where, args := whereClause(f)

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM campaigns WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count campaigns: %w", err)
	}

	query := fmt.Sprintf(`SELECT doc FROM campaigns WHERE %s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		where, len(args)+1, len(args)+2)
	rows, err := r.pool.Query(ctx, query, append(args, page.Limit, page.Offset())...)
	if err != nil {
		return nil, 0, fmt.Errorf("list campaigns: %w", err)
	}
	docs, err := pgx.CollectRows(rows, pgx.RowTo[[]byte])
	if err != nil {
		return nil, 0, fmt.Errorf("scan campaigns: %w", err)
	}
	campaigns := make([]domain.Campaign, 0, len(docs))
	for _, doc := range docs {
		c, err := decode(doc)
		if err != nil {
			return nil, 0, err
		}
		campaigns = append(campaigns, *c)
	}
	return campaigns, total, nil
}

// Summary aggregates matching campaigns per status.
func (r *CampaignRepository) Summary(ctx context.Context, f port.ListFilter) (*port.Summary, error) {
	where, args := whereClause(f)
	rows, err := r.pool.Query(ctx, `
        SELECT status, count(*),
               COALESCE(sum(total_budget),0), COALESCE(sum(spent),0),
               COALESCE(sum(impressions),0), COALESCE(sum(clicks),0), COALESCE(sum(conversions),0)
        FROM campaigns WHERE `+where+` GROUP BY status`, args...)
	if err != nil {
		return nil, fmt.Errorf("summarize campaigns: %w", err)
	}
	defer rows.Close()

	s := &port.Summary{ByStatus: make(map[domain.Status]int64)}
	for rows.Next() {
		var (
			status                                    string
			count, budget, spent, imps, clicks, convs int64
		)
		if err = rows.Scan(&status, &count, &budget, &spent, &imps, &clicks, &convs); err != nil {
			return nil, fmt.Errorf("scan summary: %w", err)
		}
		s.ByStatus[domain.Status(status)] = count
		s.Campaigns += count
		s.TotalBudget += budget
		s.TotalSpent += spent
		s.Impressions += imps
		s.Clicks += clicks
		s.Conversions += convs
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("summarize campaigns: %w", err)
	}
	s.Finish()
	return s, nil
}

// whereClause renders the filter as SQL conditions with positional args.
func whereClause(f port.ListFilter) (string, []any) {
	conds := []string{"organization_id = $1"}
	args := []any{f.OrganizationID}
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.VisibleTo != "" {
		args = append(args, f.VisibleTo)
		conds = append(conds, fmt.Sprintf("(created_by = $%d OR $%d = ANY(member_ids))", len(args), len(args)))
	}
	if f.Status != "" {
		add("status = $%d", string(f.Status))
	}
	if f.Type != "" {
		add("type = $%d", string(f.Type))
	}
	if f.Priority != "" {
		add("priority = $%d", string(f.Priority))
	}
	if f.Tag != "" {
		add("$%d = ANY(tags)", f.Tag)
	}
	if f.Search != "" {
		add("title ILIKE '%%' || $%d || '%%'", escapeLike(f.Search))
	}
	return strings.Join(conds, " AND "), args
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func decode(doc []byte) (*domain.Campaign, error) {
	var c domain.Campaign
	if err := json.Unmarshal(doc, &c); err != nil {
		return nil, fmt.Errorf("decode campaign: %w", err)
	}
	return &c, nil
}

func tags(c domain.Campaign) []string {
	if c.Tags == nil {
		return []string{}
	}
	return c.Tags
}

func memberIDs(c domain.Campaign) []string {
	ids := make([]string, 0, len(c.Team.Members))
	for _, m := range c.Team.Members {
		ids = append(ids, m.UserID)
	}
	return ids
}
