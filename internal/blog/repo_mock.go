package blog

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
)

var _ blogRepo = (*repoMock)(nil)

type repoMock struct {
	Posts map[int]*Blog
	mutex sync.Mutex
}

func newRepoMock() *repoMock {
	return &repoMock{
		Posts: make(map[int]*Blog),
	}
}

func (r *repoMock) AddBlog(_ context.Context, blog *Blog) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if blog.ID == 0 {
		blog.ID = len(r.Posts) + 1
	}

	if _, ok := r.Posts[blog.ID]; ok {
		return errors.New("blog exists already")
	}

	r.Posts[blog.ID] = blog
	return nil
}

func (r *repoMock) UpdateBlog(_ context.Context, id int, title, category, content string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	b, found := r.Posts[id]
	if !found {
		return ErrBlogNotFound
	}
	b.Title = title
	b.Category = category
	b.Content = content
	return nil
}

func (r *repoMock) BlogLiked(_ context.Context, id int) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	b, found := r.Posts[id]
	if !found {
		return ErrBlogNotFound
	}
	b.Likes++
	return nil
}

func (r *repoMock) DeleteBlog(_ context.Context, id int) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, found := r.Posts[id]; !found {
		return ErrBlogNotFound
	}
	delete(r.Posts, id)
	return nil
}

func (r *repoMock) All(_ context.Context, filter Filter) ([]*Blog, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	var blogs []*Blog
	for _, b := range r.Posts {
		if filter.Category != "" && b.Category != filter.Category {
			continue
		}
		if filter.Search != "" {
			search := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(b.Title), search) &&
				!strings.Contains(strings.ToLower(b.Content), search) {
				continue
			}
		}
		blogs = append(blogs, b)
	}

	sort.Slice(blogs, func(i, j int) bool {
		return blogs[i].ID > blogs[j].ID
	})

	return blogs, nil
}

func (r *repoMock) BlogsCount(_ context.Context) (int, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return len(r.Posts), nil
}

func (r *repoMock) GetBlogsPage(ctx context.Context, page, size int) ([]*Blog, error) {
	all, err := r.All(ctx, Filter{})
	if err != nil {
		return nil, err
	}

	offset := (page - 1) * size
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + size
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}
