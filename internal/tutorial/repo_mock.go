package tutorial

import (
	"context"
	"sort"
	"strings"
	"sync"
)

var _ tutorialRepo = (*repoMock)(nil)

type repoMock struct {
	Tutorials map[int]*Tutorial
	mutex     sync.Mutex
}

func newRepoMock() *repoMock {
	return &repoMock{
		Tutorials: make(map[int]*Tutorial),
	}
}

func (r *repoMock) Add(_ context.Context, tutorial *Tutorial) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if tutorial.ID == 0 {
		tutorial.ID = len(r.Tutorials) + 1
	}
	r.Tutorials[tutorial.ID] = tutorial
	return nil
}

func (r *repoMock) Get(_ context.Context, id int) (*Tutorial, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	tut, found := r.Tutorials[id]
	if !found {
		return nil, ErrTutorialNotFound
	}
	return tut, nil
}

func (r *repoMock) List(_ context.Context, filter Filter) ([]Tutorial, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	var tutorials []Tutorial
	for _, tut := range r.Tutorials {
		if filter.Category != "" && tut.Category != filter.Category {
			continue
		}
		if filter.Difficulty != "" && tut.Difficulty != filter.Difficulty {
			continue
		}
		if filter.Search != "" {
			search := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(tut.Title), search) &&
				!strings.Contains(strings.ToLower(tut.Description), search) {
				continue
			}
		}
		tutorials = append(tutorials, *tut)
	}

	sort.Slice(tutorials, func(i, j int) bool {
		if tutorials[i].Featured != tutorials[j].Featured {
			return tutorials[i].Featured
		}
		return tutorials[i].Views > tutorials[j].Views
	})

	return tutorials, nil
}

func (r *repoMock) IncrementViews(_ context.Context, id int) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	tut, found := r.Tutorials[id]
	if !found {
		return ErrTutorialNotFound
	}
	tut.Views++
	return nil
}

func (r *repoMock) Update(_ context.Context, tutorial *Tutorial) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	existing, found := r.Tutorials[tutorial.ID]
	if !found {
		return ErrTutorialNotFound
	}
	tutorial.Views = existing.Views
	r.Tutorials[tutorial.ID] = tutorial
	return nil
}

func (r *repoMock) Delete(_ context.Context, id int) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, found := r.Tutorials[id]; !found {
		return ErrTutorialNotFound
	}
	delete(r.Tutorials, id)
	return nil
}
