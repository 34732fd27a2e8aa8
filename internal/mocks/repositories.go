// Package mocks provides in-memory repository implementations for
// service and handler tests.
package mocks

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"time"

	"github.com/knowledge-base-api/internal/models"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	Users       map[int64]*models.User
	EmailToUser map[string]*models.User
	InsertError error
	nextID      int64
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users:       make(map[int64]*models.User),
		EmailToUser: make(map[string]*models.User),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	if m.InsertError != nil {
		return m.InsertError
	}
	m.nextID++
	user.ID = m.nextID
	user.Email = strings.ToLower(user.Email)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	m.Users[user.ID] = user
	m.EmailToUser[user.Email] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return m.Users[id], nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.EmailToUser[strings.ToLower(email)], nil
}

func (m *MockUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	_, exists := m.EmailToUser[strings.ToLower(email)]
	return exists, nil
}

func (m *MockUserRepository) List(ctx context.Context) ([]*models.User, error) {
	users := make([]*models.User, 0, len(m.Users))
	for _, user := range m.Users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, id int64, role string) error {
	user, ok := m.Users[id]
	if !ok {
		return sql.ErrNoRows
	}
	user.Role = role
	return nil
}

func (m *MockUserRepository) Delete(ctx context.Context, id int64) error {
	user, ok := m.Users[id]
	if !ok {
		return sql.ErrNoRows
	}
	delete(m.EmailToUser, user.Email)
	delete(m.Users, id)
	return nil
}

func (m *MockUserRepository) Count(ctx context.Context) (int, error) {
	return len(m.Users), nil
}

// MockSectionRepository is a mock implementation of SectionRepository
type MockSectionRepository struct {
	Sections    map[int64]*models.Section
	InsertError error
	nextID      int64
}

func NewMockSectionRepository() *MockSectionRepository {
	return &MockSectionRepository{Sections: make(map[int64]*models.Section)}
}

func (m *MockSectionRepository) Create(ctx context.Context, section *models.Section) error {
	if m.InsertError != nil {
		return m.InsertError
	}
	m.nextID++
	section.ID = m.nextID
	section.CreatedAt = time.Now()
	section.UpdatedAt = section.CreatedAt
	m.Sections[section.ID] = section
	return nil
}

func (m *MockSectionRepository) GetByID(ctx context.Context, id int64) (*models.Section, error) {
	return m.Sections[id], nil
}

func (m *MockSectionRepository) List(ctx context.Context) ([]*models.Section, error) {
	sections := make([]*models.Section, 0, len(m.Sections))
	for _, section := range m.Sections {
		sections = append(sections, section)
	}
	sort.Slice(sections, func(i, j int) bool {
		if sections[i].OrderIndex != sections[j].OrderIndex {
			return sections[i].OrderIndex < sections[j].OrderIndex
		}
		return sections[i].ID < sections[j].ID
	})
	return sections, nil
}

func (m *MockSectionRepository) Update(ctx context.Context, section *models.Section) error {
	if _, ok := m.Sections[section.ID]; !ok {
		return sql.ErrNoRows
	}
	m.Sections[section.ID] = section
	return nil
}

func (m *MockSectionRepository) UpdateOrder(ctx context.Context, id int64, orderIndex int) error {
	section, ok := m.Sections[id]
	if !ok {
		return sql.ErrNoRows
	}
	section.OrderIndex = orderIndex
	return nil
}

func (m *MockSectionRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.Sections[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.Sections, id)
	return nil
}

func (m *MockSectionRepository) NameExists(ctx context.Context, name string, excludeID int64) (bool, error) {
	for _, section := range m.Sections {
		if section.Name == name && section.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockSectionRepository) NextOrderIndex(ctx context.Context) (int, error) {
	next := 0
	for _, section := range m.Sections {
		if section.OrderIndex >= next {
			next = section.OrderIndex + 1
		}
	}
	return next, nil
}

func (m *MockSectionRepository) StreamAll(ctx context.Context, callback func(*models.Section) error) error {
	sections, _ := m.List(ctx)
	for _, section := range sections {
		if err := callback(section); err != nil {
			return err
		}
	}
	return nil
}

// MockContentRepository is a mock implementation of ContentRepository
type MockContentRepository struct {
	Items       map[int64]*models.ContentItem
	InsertError error
	nextID      int64
}

func NewMockContentRepository() *MockContentRepository {
	return &MockContentRepository{Items: make(map[int64]*models.ContentItem)}
}

func (m *MockContentRepository) Create(ctx context.Context, item *models.ContentItem) error {
	if m.InsertError != nil {
		return m.InsertError
	}
	m.nextID++
	item.ID = m.nextID
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt
	m.Items[item.ID] = item
	return nil
}

func (m *MockContentRepository) GetByID(ctx context.Context, id int64) (*models.ContentItem, error) {
	return m.Items[id], nil
}

func (m *MockContentRepository) ListBySection(ctx context.Context, sectionID int64, publishedOnly bool) ([]*models.ContentItem, error) {
	var items []*models.ContentItem
	for _, item := range m.Items {
		if item.SectionID != sectionID {
			continue
		}
		if publishedOnly && !item.Published {
			continue
		}
		items = append(items, item)
	}
	sortItems(items)
	return items, nil
}

func (m *MockContentRepository) List(ctx context.Context, publishedOnly bool) ([]*models.ContentItem, error) {
	var items []*models.ContentItem
	for _, item := range m.Items {
		if publishedOnly && !item.Published {
			continue
		}
		items = append(items, item)
	}
	sortItems(items)
	return items, nil
}

func (m *MockContentRepository) Update(ctx context.Context, item *models.ContentItem) error {
	if _, ok := m.Items[item.ID]; !ok {
		return sql.ErrNoRows
	}
	m.Items[item.ID] = item
	return nil
}

func (m *MockContentRepository) UpdateOrder(ctx context.Context, id int64, orderIndex int) error {
	item, ok := m.Items[id]
	if !ok {
		return sql.ErrNoRows
	}
	item.OrderIndex = orderIndex
	return nil
}

func (m *MockContentRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.Items[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.Items, id)
	return nil
}

func (m *MockContentRepository) NextOrderIndex(ctx context.Context, sectionID int64) (int, error) {
	next := 0
	for _, item := range m.Items {
		if item.SectionID == sectionID && item.OrderIndex >= next {
			next = item.OrderIndex + 1
		}
	}
	return next, nil
}

func (m *MockContentRepository) Count(ctx context.Context) (int, error) {
	return len(m.Items), nil
}

func (m *MockContentRepository) StreamAll(ctx context.Context, callback func(*models.ContentItem) error) error {
	items, _ := m.List(ctx, false)
	for _, item := range items {
		if err := callback(item); err != nil {
			return err
		}
	}
	return nil
}

func sortItems(items []*models.ContentItem) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].OrderIndex != items[j].OrderIndex {
			return items[i].OrderIndex < items[j].OrderIndex
		}
		return items[i].ID < items[j].ID
	})
}

// MockContainerRepository is a mock implementation of ContainerRepository
type MockContainerRepository struct {
	Instances   map[int64]*models.ContainerInstance
	InsertError error
	nextID      int64
}

func NewMockContainerRepository() *MockContainerRepository {
	return &MockContainerRepository{Instances: make(map[int64]*models.ContainerInstance)}
}

func (m *MockContainerRepository) Create(ctx context.Context, instance *models.ContainerInstance) error {
	if m.InsertError != nil {
		return m.InsertError
	}
	m.nextID++
	instance.ID = m.nextID
	instance.CreatedAt = time.Now()
	instance.UpdatedAt = instance.CreatedAt
	m.Instances[instance.ID] = instance
	return nil
}

func (m *MockContainerRepository) GetByID(ctx context.Context, id int64) (*models.ContainerInstance, error) {
	return m.Instances[id], nil
}

func (m *MockContainerRepository) ListByContentItem(ctx context.Context, contentItemID int64) ([]*models.ContainerInstance, error) {
	var instances []*models.ContainerInstance
	for _, instance := range m.Instances {
		if instance.ContentItemID == contentItemID {
			instances = append(instances, instance)
		}
	}
	sort.Slice(instances, func(i, j int) bool {
		if instances[i].OrderIndex != instances[j].OrderIndex {
			return instances[i].OrderIndex < instances[j].OrderIndex
		}
		return instances[i].ID < instances[j].ID
	})
	return instances, nil
}

func (m *MockContainerRepository) Update(ctx context.Context, instance *models.ContainerInstance) error {
	if _, ok := m.Instances[instance.ID]; !ok {
		return sql.ErrNoRows
	}
	m.Instances[instance.ID] = instance
	return nil
}

func (m *MockContainerRepository) UpdateOrder(ctx context.Context, id int64, orderIndex int) error {
	instance, ok := m.Instances[id]
	if !ok {
		return sql.ErrNoRows
	}
	instance.OrderIndex = orderIndex
	return nil
}

func (m *MockContainerRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.Instances[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.Instances, id)
	return nil
}

func (m *MockContainerRepository) NextOrderIndex(ctx context.Context, contentItemID int64) (int, error) {
	next := 0
	for _, instance := range m.Instances {
		if instance.ContentItemID == contentItemID && instance.OrderIndex >= next {
			next = instance.OrderIndex + 1
		}
	}
	return next, nil
}

func (m *MockContainerRepository) StreamAll(ctx context.Context, callback func(*models.ContainerInstance) error) error {
	ids := make([]int64, 0, len(m.Instances))
	for id := range m.Instances {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		if err := callback(m.Instances[id]); err != nil {
			return err
		}
	}
	return nil
}

// MockSearchRepository is a mock implementation of SearchRepository
// backed by a content repository
type MockSearchRepository struct {
	Content *MockContentRepository
}

func NewMockSearchRepository(content *MockContentRepository) *MockSearchRepository {
	return &MockSearchRepository{Content: content}
}

func (m *MockSearchRepository) Search(ctx context.Context, query string, publishedOnly bool) ([]*models.ContentItem, error) {
	items, _ := m.Content.List(ctx, publishedOnly)
	needle := strings.ToLower(query)
	var matched []*models.ContentItem
	for _, item := range items {
		haystack := strings.ToLower(item.Title + " " + item.Description + " " + string(item.Content))
		if strings.Contains(haystack, needle) {
			matched = append(matched, item)
		}
	}
	return matched, nil
}
