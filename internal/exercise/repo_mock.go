package exercise

import (
	"context"
	"sort"
	"strings"
	"sync"
)

var _ exerciseRepo = (*repoMock)(nil)

type repoMock struct {
	Exercises map[int]*Exercise
	mutex     sync.Mutex
}

func newRepoMock() *repoMock {
	return &repoMock{
		Exercises: make(map[int]*Exercise),
	}
}

func (r *repoMock) nameTaken(name string, excludeID int) bool {
	for _, ex := range r.Exercises {
		if ex.Name == name && ex.ID != excludeID {
			return true
		}
	}
	return false
}

func (r *repoMock) Add(_ context.Context, exercise *Exercise) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.nameTaken(exercise.Name, 0) {
		return ErrExerciseNameTaken
	}
	if exercise.ID == 0 {
		exercise.ID = len(r.Exercises) + 1
	}
	r.Exercises[exercise.ID] = exercise
	return nil
}

func (r *repoMock) Get(_ context.Context, id int) (*Exercise, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	ex, found := r.Exercises[id]
	if !found {
		return nil, ErrExerciseNotFound
	}
	return ex, nil
}

func (r *repoMock) List(_ context.Context, filter Filter) ([]Exercise, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	var exercises []Exercise
	for _, ex := range r.Exercises {
		if filter.Category != "" && ex.Category != filter.Category {
			continue
		}
		if filter.Difficulty != "" && ex.Difficulty != filter.Difficulty {
			continue
		}
		if filter.Search != "" {
			search := strings.ToLower(filter.Search)
			if !strings.Contains(strings.ToLower(ex.Name), search) &&
				!strings.Contains(strings.ToLower(ex.Description), search) {
				continue
			}
		}
		exercises = append(exercises, *ex)
	}

	sort.Slice(exercises, func(i, j int) bool {
		return exercises[i].Name < exercises[j].Name
	})

	return exercises, nil
}

func (r *repoMock) Update(_ context.Context, exercise *Exercise) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, found := r.Exercises[exercise.ID]; !found {
		return ErrExerciseNotFound
	}
	if r.nameTaken(exercise.Name, exercise.ID) {
		return ErrExerciseNameTaken
	}
	r.Exercises[exercise.ID] = exercise
	return nil
}

func (r *repoMock) Delete(_ context.Context, id int) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, found := r.Exercises[id]; !found {
		return ErrExerciseNotFound
	}
	delete(r.Exercises, id)
	return nil
}
