package handlers_test

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"BLOG_BACK-END/internal/models"
	"BLOG_BACK-END/internal/store"
)

// fakeUserRepository is an in-memory store.UserRepository for handler tests.
type fakeUserRepository struct {
	mu    sync.Mutex
	users map[uuid.UUID]models.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[uuid.UUID]models.User)}
}

func (f *fakeUserRepository) Create(_ context.Context, user models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.users {
		if existing.Email == user.Email {
			return store.ErrEmailTaken
		}
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepository) FindByEmail(_ context.Context, email string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, store.ErrUserNotFound
}

func (f *fakeUserRepository) FindByID(_ context.Context, id uuid.UUID) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user, ok := f.users[id]; ok {
		return user, nil
	}
	return models.User{}, store.ErrUserNotFound
}

func (f *fakeUserRepository) delete(id uuid.UUID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, id)
}

// fakePostRepository is an in-memory store.PostRepository for handler tests.
// The author join is resolved against the paired user repository.
type fakePostRepository struct {
	mu    sync.Mutex
	posts map[uuid.UUID]models.Post
	users *fakeUserRepository
}

func newFakePostRepository(users *fakeUserRepository) *fakePostRepository {
	return &fakePostRepository{posts: make(map[uuid.UUID]models.Post), users: users}
}

func (f *fakePostRepository) withAuthor(post models.Post) models.PostWithAuthor {
	joined := models.PostWithAuthor{Post: post}
	if author, err := f.users.FindByID(context.Background(), post.UserID); err == nil {
		joined.AuthorName = author.Name
		joined.AuthorEmail = author.Email
	}
	return joined
}

func (f *fakePostRepository) Create(_ context.Context, post models.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.posts[post.ID] = post
	return nil
}

func (f *fakePostRepository) FindByID(_ context.Context, id uuid.UUID) (models.PostWithAuthor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	post, ok := f.posts[id]
	if !ok {
		return models.PostWithAuthor{}, store.ErrPostNotFound
	}
	return f.withAuthor(post), nil
}

func (f *fakePostRepository) OwnerOf(_ context.Context, id uuid.UUID) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	post, ok := f.posts[id]
	if !ok {
		return uuid.Nil, store.ErrPostNotFound
	}
	return post.UserID, nil
}

func (f *fakePostRepository) Update(_ context.Context, id uuid.UUID, update store.PostUpdate) (models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	post, ok := f.posts[id]
	if !ok {
		return models.Post{}, store.ErrPostNotFound
	}
	if update.Title != nil {
		post.Title = *update.Title
	}
	if update.Content != nil {
		post.Content = *update.Content
	}
	post.UpdatedAt = update.UpdatedAt
	f.posts[id] = post
	return post, nil
}

func (f *fakePostRepository) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.posts, id)
	return nil
}

func (f *fakePostRepository) List(_ context.Context, limit, offset int) ([]models.PostWithAuthor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	all := make([]models.Post, 0, len(f.posts))
	for _, post := range f.posts {
		all = append(all, post)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	if offset > len(all) {
		offset = len(all)
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}

	page := make([]models.PostWithAuthor, 0, end-offset)
	for _, post := range all[offset:end] {
		page = append(page, f.withAuthor(post))
	}
	return page, nil
}

func (f *fakePostRepository) Count(_ context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.posts), nil
}
