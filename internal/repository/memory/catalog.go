package memory

import (
	"context"
	"sort"
	"time"

	"local_delivery/internal/models"
	"local_delivery/internal/repository"
)

type userRepository struct {
	s *Store
}

func NewUserRepository(s *Store) repository.UserRepository {
	return &userRepository{s: s}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	user.ID = r.s.nextID()
	now := time.Now()
	user.CreatedAt, user.UpdatedAt = now, now
	r.s.users[user.ID] = *user
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	user.UpdatedAt = time.Now()
	r.s.users[user.ID] = *user
	return nil
}

type restaurantRepository struct {
	s *Store
}

func NewRestaurantRepository(s *Store) repository.RestaurantRepository {
	return &restaurantRepository{s: s}
}

func (r *restaurantRepository) Create(ctx context.Context, restaurant *models.Restaurant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.restaurants {
		if existing.OwnerID == restaurant.OwnerID {
			return repository.ErrDuplicate
		}
	}
	restaurant.ID = r.s.nextID()
	now := time.Now()
	restaurant.CreatedAt, restaurant.UpdatedAt = now, now
	r.s.restaurants[restaurant.ID] = *restaurant
	return nil
}

func (r *restaurantRepository) GetByID(ctx context.Context, id uint) (*models.Restaurant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rest, ok := r.s.restaurants[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &rest, nil
}

func (r *restaurantRepository) GetByOwnerID(ctx context.Context, ownerID uint) (*models.Restaurant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, rest := range r.s.restaurants {
		if rest.OwnerID == ownerID {
			return &rest, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *restaurantRepository) GetAll(ctx context.Context) ([]models.Restaurant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	all := make([]models.Restaurant, 0, len(r.s.restaurants))
	for _, rest := range r.s.restaurants {
		all = append(all, rest)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, nil
}

func (r *restaurantRepository) Update(ctx context.Context, restaurant *models.Restaurant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.restaurants[restaurant.ID]; !ok {
		return repository.ErrNotFound
	}
	restaurant.UpdatedAt = time.Now()
	r.s.restaurants[restaurant.ID] = *restaurant
	return nil
}

type menuRepository struct {
	s *Store
}

func NewMenuRepository(s *Store) repository.MenuRepository {
	return &menuRepository{s: s}
}

func (r *menuRepository) Create(ctx context.Context, item *models.MenuItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	item.ID = r.s.nextID()
	now := time.Now()
	item.CreatedAt, item.UpdatedAt = now, now
	r.s.menu[item.ID] = *item
	return nil
}

func (r *menuRepository) GetByID(ctx context.Context, id uint) (*models.MenuItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	item, ok := r.s.menu[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &item, nil
}

func (r *menuRepository) GetAvailableByRestaurant(ctx context.Context, restaurantID uint) ([]models.MenuItem, error) {
	return r.filter(func(m models.MenuItem) bool {
		return m.RestaurantID == restaurantID && m.IsAvailable
	}), nil
}

func (r *menuRepository) GetByIDs(ctx context.Context, restaurantID uint, ids []uint) ([]models.MenuItem, error) {
	want := make(map[uint]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	return r.filter(func(m models.MenuItem) bool {
		return m.RestaurantID == restaurantID && want[m.ID]
	}), nil
}

func (r *menuRepository) filter(keep func(models.MenuItem) bool) []models.MenuItem {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	items := []models.MenuItem{}
	for _, m := range r.s.menu {
		if keep(m) {
			items = append(items, m)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items
}

func (r *menuRepository) Delete(ctx context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.menu, id)
	return nil
}

type settingsRepository struct {
	s *Store
}

func NewSettingsRepository(s *Store) repository.SettingsRepository {
	return &settingsRepository{s: s}
}

func (r *settingsRepository) CreateSettings(ctx context.Context, setting *models.PricingSetting) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.settings[setting.SettingName]; ok {
		return repository.ErrDuplicate
	}
	setting.ID = r.s.nextID()
	r.s.settings[setting.SettingName] = *setting
	return nil
}

func (r *settingsRepository) GetSettings(ctx context.Context, settingName string) (*models.PricingSetting, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	setting, ok := r.s.settings[settingName]
	if !ok || !setting.IsActive {
		return nil, repository.ErrNotFound
	}
	return &setting, nil
}

func (r *settingsRepository) FindSetting(ctx context.Context, settingName string) (*models.PricingSetting, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	setting, ok := r.s.settings[settingName]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &setting, nil
}

func (r *settingsRepository) UpsertSettings(ctx context.Context, setting *models.PricingSetting) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if existing, ok := r.s.settings[setting.SettingName]; ok {
		setting.ID = existing.ID
	} else {
		setting.ID = r.s.nextID()
	}
	r.s.settings[setting.SettingName] = *setting
	return nil
}
