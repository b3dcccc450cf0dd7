package service

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/littlelemon/restaurant-api/internal/core/domain"
	"github.com/littlelemon/restaurant-api/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory store: carts, orders, users and catalog behind one mutex.
// Do snapshots the state and restores it when fn fails, mirroring a rollback.
// ---------------------------------------------------------------------------

type memState struct {
	cart       map[uint]*domain.CartLine
	orders     map[uint]*domain.Order
	lines      map[uint][]*domain.OrderLine
	nextCart   uint
	nextOrder  uint
	nextLineID uint
}

func (s memState) clone() memState {
	c := memState{
		cart:       make(map[uint]*domain.CartLine, len(s.cart)),
		orders:     make(map[uint]*domain.Order, len(s.orders)),
		lines:      make(map[uint][]*domain.OrderLine, len(s.lines)),
		nextCart:   s.nextCart,
		nextOrder:  s.nextOrder,
		nextLineID: s.nextLineID,
	}
	for k, v := range s.cart {
		line := *v
		c.cart[k] = &line
	}
	for k, v := range s.orders {
		o := *v
		c.orders[k] = &o
	}
	for k, v := range s.lines {
		c.lines[k] = append([]*domain.OrderLine(nil), v...)
	}
	return c
}

type memStore struct {
	mu    sync.Mutex
	state memState

	users    map[uint]*domain.User
	groups   map[string]map[uint]bool
	items    map[uint]*domain.MenuItem
	cats     map[uint]*domain.Category
	nextID   uint
	lastFind ports.OrderScope

	createLinesErr error
	// clearShortfall makes ClearByUser report fewer deleted rows, as when a
	// concurrent placement removed the lines first.
	clearShortfall int64
}

func newMemStore() *memStore {
	return &memStore{
		state: memState{
			cart:   map[uint]*domain.CartLine{},
			orders: map[uint]*domain.Order{},
			lines:  map[uint][]*domain.OrderLine{},
		},
		users:  map[uint]*domain.User{},
		groups: map[string]map[uint]bool{domain.GroupManager: {}, domain.GroupDeliveryCrew: {}},
		items:  map[uint]*domain.MenuItem{},
		cats:   map[uint]*domain.Category{},
	}
}

func (m *memStore) Do(ctx context.Context, fn func(r ports.Repositories) error) error {
	m.mu.Lock()
	snapshot := m.state.clone()
	m.mu.Unlock()

	if err := fn(ports.Repositories{Carts: m, Orders: m}); err != nil {
		m.mu.Lock()
		m.state = snapshot
		m.mu.Unlock()
		return err
	}
	return nil
}

// --- seeding helpers ---

func (m *memStore) addUser(username string, groups ...string) *domain.User {
	m.nextID++
	u := &domain.User{ID: m.nextID, Username: username}
	m.users[u.ID] = u
	for _, g := range groups {
		m.groups[g][u.ID] = true
	}
	return u
}

func qty(n int) *int { return &n }

func (m *memStore) addMenuItem(title string, price int64) *domain.MenuItem {
	if len(m.cats) == 0 {
		m.cats[1] = &domain.Category{ID: 1, Slug: "mains", Title: "Mains"}
	}
	id := uint(len(m.items) + 1)
	item := &domain.MenuItem{ID: id, Title: title, Price: decimal.NewFromInt(price), CategoryID: 1}
	m.items[id] = item
	return item
}

func (m *memStore) seedOrder(userID uint, crewID *uint, status domain.OrderStatus) *domain.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.nextOrder++
	o := &domain.Order{ID: m.state.nextOrder, UserID: userID, DeliveryCrewID: crewID, Status: status, Total: decimal.NewFromInt(10)}
	m.state.orders[o.ID] = o
	m.state.lines[o.ID] = []*domain.OrderLine{{ID: 1, OrderID: o.ID, MenuItemID: 1, Quantity: 1, UnitPrice: decimal.NewFromInt(10), LineTotal: decimal.NewFromInt(10)}}
	return o
}

func (m *memStore) cartSize(userID uint) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, l := range m.state.cart {
		if l.UserID == userID {
			n++
		}
	}
	return n
}

func (m *memStore) orderCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.state.orders)
}

// --- CartRepository ---

func (m *memStore) Add(_ context.Context, line *domain.CartLine) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.state.cart {
		if l.UserID == line.UserID && l.MenuItemID == line.MenuItemID {
			return domain.ErrCartLineExists
		}
	}
	m.state.nextCart++
	line.ID = m.state.nextCart
	clone := *line
	m.state.cart[line.ID] = &clone
	return nil
}

func (m *memStore) ListByUser(_ context.Context, userID uint) ([]*domain.CartLine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.CartLine
	for _, l := range m.state.cart {
		if l.UserID == userID {
			clone := *l
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) ClearByUser(_ context.Context, userID uint) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, l := range m.state.cart {
		if l.UserID == userID {
			delete(m.state.cart, id)
			n++
		}
	}
	return n - m.clearShortfall, nil
}

// --- OrderRepository ---

func (m *memStore) Create(_ context.Context, o *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.nextOrder++
	o.ID = m.state.nextOrder
	clone := *o
	m.state.orders[o.ID] = &clone
	return nil
}

func (m *memStore) CreateLines(_ context.Context, lines []*domain.OrderLine) error {
	if m.createLinesErr != nil {
		return m.createLinesErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range lines {
		m.state.nextLineID++
		l.ID = m.state.nextLineID
		clone := *l
		m.state.lines[l.OrderID] = append(m.state.lines[l.OrderID], &clone)
	}
	return nil
}

func inScope(o *domain.Order, scope ports.OrderScope) bool {
	if scope.UserID != 0 && o.UserID != scope.UserID {
		return false
	}
	if scope.DeliveryCrewID != 0 && !o.IsAssignedTo(scope.DeliveryCrewID) {
		return false
	}
	return true
}

func (m *memStore) FindByID(_ context.Context, id uint, scope ports.OrderScope) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastFind = scope
	o, ok := m.state.orders[id]
	if !ok || !inScope(o, scope) {
		return nil, domain.ErrOrderNotFound
	}
	clone := *o
	return &clone, nil
}

func (m *memStore) List(_ context.Context, f ports.ListOrdersFilter) ([]*domain.Order, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var matched []*domain.Order
	for _, o := range m.state.orders {
		if !inScope(o, f.Scope) {
			continue
		}
		if f.Status != nil && o.Status != *f.Status {
			continue
		}
		clone := *o
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := int64(len(matched))
	skip := (f.Page - 1) * f.Limit
	if skip > len(matched) {
		return []*domain.Order{}, total, nil
	}
	end := skip + f.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[skip:end], total, nil
}

func (m *memStore) Lines(_ context.Context, orderID uint) ([]*domain.OrderLine, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*domain.OrderLine(nil), m.state.lines[orderID]...), nil
}

func (m *memStore) UpdateStatus(_ context.Context, id uint, status domain.OrderStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.state.orders[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	o.Status = status
	return nil
}

func (m *memStore) AssignDeliveryCrew(_ context.Context, id uint, crewID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.state.orders[id]
	if !ok {
		return domain.ErrOrderNotFound
	}
	o.DeliveryCrewID = &crewID
	return nil
}

// --- UserRepository ---

type memUsers struct{ m *memStore }

func (u memUsers) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, existing := range u.m.users {
		if existing.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}
	u.m.nextID++
	clone := *user
	clone.ID = u.m.nextID
	u.m.users[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (u memUsers) FindByID(_ context.Context, id uint) (*domain.User, error) {
	user, ok := u.m.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (u memUsers) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, user := range u.m.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (u memUsers) Groups(_ context.Context, userID uint) ([]string, error) {
	var out []string
	for name, members := range u.m.groups {
		if members[userID] {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (u memUsers) GroupMembers(_ context.Context, group string) ([]*domain.User, error) {
	var out []*domain.User
	for id := range u.m.groups[group] {
		clone := *u.m.users[id]
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (u memUsers) IsGroupMember(_ context.Context, userID uint, group string) (bool, error) {
	return u.m.groups[group][userID], nil
}

func (u memUsers) AddToGroup(_ context.Context, userID uint, group string) error {
	u.m.groups[group][userID] = true
	return nil
}

func (u memUsers) RemoveFromGroup(_ context.Context, userID uint, group string) error {
	delete(u.m.groups[group], userID)
	return nil
}

// --- CatalogRepository ---

type memCatalog struct{ m *memStore }

func (c memCatalog) FindMenuItem(_ context.Context, id uint) (*domain.MenuItem, error) {
	item, ok := c.m.items[id]
	if !ok {
		return nil, domain.ErrMenuItemNotFound
	}
	clone := *item
	return &clone, nil
}

func (c memCatalog) ListMenuItems(_ context.Context, f ports.ListMenuItemsFilter) ([]*domain.MenuItem, int64, error) {
	var out []*domain.MenuItem
	for _, item := range c.m.items {
		if f.Search != "" && !strings.Contains(strings.ToLower(item.Title), strings.ToLower(f.Search)) {
			continue
		}
		clone := *item
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, int64(len(out)), nil
}

func (c memCatalog) CreateMenuItem(_ context.Context, item *domain.MenuItem) error {
	item.ID = uint(len(c.m.items) + 1)
	clone := *item
	c.m.items[item.ID] = &clone
	return nil
}

func (c memCatalog) UpdateMenuItem(_ context.Context, item *domain.MenuItem) error {
	clone := *item
	c.m.items[item.ID] = &clone
	return nil
}

func (c memCatalog) DeleteMenuItem(_ context.Context, id uint) error {
	delete(c.m.items, id)
	return nil
}

func (c memCatalog) FindCategory(_ context.Context, id uint) (*domain.Category, error) {
	cat, ok := c.m.cats[id]
	if !ok {
		return nil, domain.ErrCategoryNotFound
	}
	clone := *cat
	return &clone, nil
}

func (c memCatalog) ListCategories(_ context.Context) ([]*domain.Category, error) {
	var out []*domain.Category
	for _, cat := range c.m.cats {
		clone := *cat
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (c memCatalog) CreateCategory(_ context.Context, cat *domain.Category) error {
	for _, existing := range c.m.cats {
		if existing.Slug == cat.Slug {
			return domain.ErrCategoryExists
		}
	}
	cat.ID = uint(len(c.m.cats) + 1)
	clone := *cat
	c.m.cats[cat.ID] = &clone
	return nil
}

// ---------------------------------------------------------------------------
// Event publisher and role cache stubs
// ---------------------------------------------------------------------------

type stubPublisher struct {
	mu     sync.Mutex
	events []domain.OrderEvent
}

func (p *stubPublisher) Publish(e domain.OrderEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

type stubRoleCache struct {
	roles       map[uint]domain.Role
	getErr      error
	gets        int
	invalidated []uint
}

func newStubRoleCache() *stubRoleCache {
	return &stubRoleCache{roles: map[uint]domain.Role{}}
}

func (c *stubRoleCache) Get(_ context.Context, userID uint) (domain.Role, bool, error) {
	c.gets++
	if c.getErr != nil {
		return domain.RoleCustomer, false, c.getErr
	}
	role, ok := c.roles[userID]
	return role, ok, nil
}

func (c *stubRoleCache) Set(_ context.Context, userID uint, role domain.Role) error {
	c.roles[userID] = role
	return nil
}

func (c *stubRoleCache) Invalidate(_ context.Context, userID uint) error {
	delete(c.roles, userID)
	c.invalidated = append(c.invalidated, userID)
	return nil
}

// actorFor builds the Actor the identity layer would resolve for u.
func (m *memStore) actorFor(u *domain.User) domain.Actor {
	groups, _ := memUsers{m}.Groups(context.Background(), u.ID)
	return domain.Actor{UserID: u.ID, Username: u.Username, Role: domain.ResolveRole(groups), Staff: u.Staff}
}
