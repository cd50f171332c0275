package services

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"gearguard/internal/entities"
	"gearguard/internal/repositories"
	"gearguard/pkg/constants"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/types"
	"gearguard/pkg/utils"

	"github.com/jackc/pgx/v5"
)

func asActor(role constants.Role) context.Context {
	return utils.WithActor(context.Background(), "actor-"+role.String(), role)
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]entities.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]entities.User{}}
}

func (r *fakeUserRepo) GetUsers(_ context.Context) ([]entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entities.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeUserRepo) FindUserByID(_ context.Context, id string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &u, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeUserRepo) CreateUser(_ context.Context, user *entities.User) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = *user
	u := *user
	return &u, nil
}

func (r *fakeUserRepo) UpdateUser(_ context.Context, user *entities.User) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return nil, apperrors.ErrNotFound
	}
	r.users[user.ID] = *user
	u := *user
	return &u, nil
}

type fakeTeamRepo struct {
	teams map[string]entities.Team
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{teams: map[string]entities.Team{}}
}

func (r *fakeTeamRepo) GetTeams(_ context.Context) ([]entities.Team, error) {
	out := make([]entities.Team, 0, len(r.teams))
	for _, t := range r.teams {
		out = append(out, t)
	}
	return out, nil
}

func (r *fakeTeamRepo) FindTeam(_ context.Context, id string) (*entities.Team, error) {
	t, ok := r.teams[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &t, nil
}

func (r *fakeTeamRepo) CreateTeam(_ context.Context, team *entities.Team) (*entities.Team, error) {
	r.teams[team.ID] = *team
	t := *team
	return &t, nil
}

func (r *fakeTeamRepo) UpdateTeam(_ context.Context, team *entities.Team) (*entities.Team, error) {
	if _, ok := r.teams[team.ID]; !ok {
		return nil, apperrors.ErrNotFound
	}
	r.teams[team.ID] = *team
	t := *team
	return &t, nil
}

func (r *fakeTeamRepo) DeleteTeam(_ context.Context, id string) error {
	if _, ok := r.teams[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.teams, id)
	return nil
}

type fakeEquipmentRepo struct {
	items      map[string]entities.Equipment
	scrapCalls int
	lastFilter types.EquipmentFilter
}

func newFakeEquipmentRepo() *fakeEquipmentRepo {
	return &fakeEquipmentRepo{items: map[string]entities.Equipment{}}
}

func (r *fakeEquipmentRepo) GetEquipments(_ context.Context, filter types.EquipmentFilter) ([]entities.Equipment, error) {
	r.lastFilter = filter
	out := make([]entities.Equipment, 0, len(r.items))
	for _, e := range r.items {
		out = append(out, e)
	}
	return out, nil
}

func (r *fakeEquipmentRepo) FindEquipment(_ context.Context, id string) (*entities.Equipment, error) {
	e, ok := r.items[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &e, nil
}

func (r *fakeEquipmentRepo) FindEquipmentForUpdateInTx(ctx context.Context, _ pgx.Tx, id string) (*entities.Equipment, error) {
	return r.FindEquipment(ctx, id)
}

func (r *fakeEquipmentRepo) CreateEquipment(_ context.Context, e *entities.Equipment) (*entities.Equipment, error) {
	r.items[e.ID] = *e
	out := *e
	return &out, nil
}

func (r *fakeEquipmentRepo) UpdateEquipment(_ context.Context, e *entities.Equipment) (*entities.Equipment, error) {
	stored, ok := r.items[e.ID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	// scrap columns are not written by an update
	e.IsScrapped, e.ScrappedAt = stored.IsScrapped, stored.ScrappedAt
	r.items[e.ID] = *e
	out := *e
	return &out, nil
}

func (r *fakeEquipmentRepo) ScrapEquipment(_ context.Context, id string, scrappedAt string, reason *string) (*entities.Equipment, error) {
	e, ok := r.items[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	r.scrapCalls++
	if !e.IsScrapped {
		e.IsScrapped = true
		e.ScrappedAt = &scrappedAt
		if reason != nil && *reason != "" {
			e.ScrappedReason = reason
		}
		r.items[id] = e
	}
	return &e, nil
}

func (r *fakeEquipmentRepo) ScrapEquipmentInTx(ctx context.Context, _ pgx.Tx, id string, scrappedAt string, reason *string) (*entities.Equipment, error) {
	return r.ScrapEquipment(ctx, id, scrappedAt, reason)
}

func (r *fakeEquipmentRepo) DeleteEquipment(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

type fakeRequestRepo struct {
	items       map[string]entities.MaintenanceRequest
	updateCalls int
	failUpdate  error
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{items: map[string]entities.MaintenanceRequest{}}
}

func (r *fakeRequestRepo) GetRequests(_ context.Context, filter types.RequestFilter) ([]entities.MaintenanceRequest, error) {
	out := make([]entities.MaintenanceRequest, 0, len(r.items))
	for _, req := range r.items {
		if filter.Stage != "" && string(req.Stage) != filter.Stage {
			continue
		}
		out = append(out, req)
	}
	return out, nil
}

func (r *fakeRequestRepo) FindRequest(_ context.Context, id string) (*entities.MaintenanceRequest, error) {
	req, ok := r.items[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &req, nil
}

func (r *fakeRequestRepo) CreateRequest(_ context.Context, req *entities.MaintenanceRequest) (*entities.MaintenanceRequest, error) {
	r.items[req.ID] = *req
	out := *req
	return &out, nil
}

func (r *fakeRequestRepo) UpdateRequest(_ context.Context, req *entities.MaintenanceRequest) (*entities.MaintenanceRequest, error) {
	r.updateCalls++
	if r.failUpdate != nil {
		return nil, r.failUpdate
	}
	if _, ok := r.items[req.ID]; !ok {
		return nil, apperrors.ErrNotFound
	}
	r.items[req.ID] = *req
	out := *req
	return &out, nil
}

func (r *fakeRequestRepo) UpdateRequestInTx(ctx context.Context, _ pgx.Tx, req *entities.MaintenanceRequest) (*entities.MaintenanceRequest, error) {
	return r.UpdateRequest(ctx, req)
}

func (r *fakeRequestRepo) DeleteRequest(_ context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

// fakeTxManager snapshots the fake repositories and restores them when fn fails.
type fakeTxManager struct {
	equipment *fakeEquipmentRepo
	requests  *fakeRequestRepo
	runs      int
}

func (m *fakeTxManager) RunInTransaction(_ context.Context, fn func(tx pgx.Tx) error) error {
	m.runs++
	equipment := cloneMap(m.equipment.items)
	requests := cloneMap(m.requests.items)
	if err := fn(nil); err != nil {
		m.equipment.items = equipment
		m.requests.items = requests
		return err
	}
	return nil
}

func cloneMap[K comparable, V any](in map[K]V) map[K]V {
	out := make(map[K]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

type fakeReportRepo struct {
	totals    entities.EquipmentTotals
	counts    map[repositories.RequestGrouping][]entities.CountByKey
	overdue   int64
	teamNames map[string]string
	lastSince *time.Time
	lastToday string
}

func (r *fakeReportRepo) EquipmentTotals(_ context.Context) (entities.EquipmentTotals, error) {
	return r.totals, nil
}

func (r *fakeReportRepo) CountRequestsBy(_ context.Context, group repositories.RequestGrouping, since *time.Time) ([]entities.CountByKey, error) {
	r.lastSince = since
	return r.counts[group], nil
}

func (r *fakeReportRepo) CountOverduePreventive(_ context.Context, today string, _ *time.Time) (int64, error) {
	r.lastToday = today
	return r.overdue, nil
}

func (r *fakeReportRepo) TeamNames(_ context.Context) (map[string]string, error) {
	return r.teamNames, nil
}

// fakeCache mimics the cache contract without expiry.
type fakeCache struct {
	mu      sync.Mutex
	values  map[string]string
	expires map[string]time.Duration
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: map[string]string{}, expires: map[string]time.Duration{}}
}

func (c *fakeCache) Set(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch v := value.(type) {
	case string:
		c.values[key] = v
	case int:
		c.values[key] = strconv.Itoa(v)
	default:
		c.values[key] = "set"
	}
	c.expires[key] = expiration
	return nil
}

func (c *fakeCache) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.values[key]
	if !ok {
		return "", repositories.ErrCacheMiss
	}
	return v, nil
}

func (c *fakeCache) Del(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.values, k)
		delete(c.expires, k)
	}
	return nil
}

func (c *fakeCache) Incr(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, _ := strconv.ParseInt(c.values[key], 10, 64)
	n++
	c.values[key] = strconv.FormatInt(n, 10)
	return n, nil
}

func (c *fakeCache) Expire(_ context.Context, key string, expiration time.Duration) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.values[key]; !ok {
		return false, nil
	}
	c.expires[key] = expiration
	return true, nil
}
