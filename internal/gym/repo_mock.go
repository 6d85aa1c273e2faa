package gym

import (
	"context"
	"sort"
	"strings"
	"sync"
)

var _ gymRepo = (*repoMock)(nil)

type repoMock struct {
	Gyms  map[int]*Gym
	mutex sync.Mutex
}

func newRepoMock() *repoMock {
	return &repoMock{
		Gyms: make(map[int]*Gym),
	}
}

func (r *repoMock) Add(_ context.Context, gym *Gym) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if gym.ID == 0 {
		gym.ID = len(r.Gyms) + 1
	}
	r.Gyms[gym.ID] = gym
	return nil
}

func (r *repoMock) Get(_ context.Context, id int) (*Gym, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	g, found := r.Gyms[id]
	if !found {
		return nil, ErrGymNotFound
	}
	return g, nil
}

func (r *repoMock) List(_ context.Context, filter Filter) ([]Gym, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	var gyms []Gym
	for _, g := range r.Gyms {
		if filter.City != "" && g.City != filter.City {
			continue
		}
		if filter.PriceRange != "" && g.PriceRange != filter.PriceRange {
			continue
		}
		if filter.Search != "" {
			search := strings.ToLower(filter.Search)
			amenities := strings.ToLower(strings.Join(g.Amenities, " "))
			if !strings.Contains(strings.ToLower(g.Name), search) &&
				!strings.Contains(strings.ToLower(g.Address), search) &&
				!strings.Contains(amenities, search) {
				continue
			}
		}
		gyms = append(gyms, *g)
	}

	sort.Slice(gyms, func(i, j int) bool {
		if gyms[i].Featured != gyms[j].Featured {
			return gyms[i].Featured
		}
		return gyms[i].Rating > gyms[j].Rating
	})

	return gyms, nil
}

func (r *repoMock) Cities(_ context.Context) ([]string, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	seen := make(map[string]bool)
	var cities []string
	for _, g := range r.Gyms {
		if !seen[g.City] {
			seen[g.City] = true
			cities = append(cities, g.City)
		}
	}
	sort.Strings(cities)
	return cities, nil
}

func (r *repoMock) Update(_ context.Context, gym *Gym) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, found := r.Gyms[gym.ID]; !found {
		return ErrGymNotFound
	}
	r.Gyms[gym.ID] = gym
	return nil
}

func (r *repoMock) Delete(_ context.Context, id int) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, found := r.Gyms[id]; !found {
		return ErrGymNotFound
	}
	delete(r.Gyms, id)
	return nil
}
