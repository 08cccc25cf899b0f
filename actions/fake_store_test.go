package actions

import (
	"context"
	"errors"

	"github.com/sabordos/cli/models"
)

// fakeStore keeps inserted documents per collection in memory.
type fakeStore struct {
	docs       map[string][]interface{}
	calls      []string
	failOn     map[string]error
	indexErr   error
	indexCalls int
	lastIDs    map[string]int
	deleted    map[string]int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		docs:    map[string][]interface{}{},
		failOn:  map[string]error{},
		lastIDs: map[string]int{},
		deleted: map[string]int64{},
	}
}

func (f *fakeStore) InsertMany(ctx context.Context, collName string, docs []interface{}) error {
	f.calls = append(f.calls, collName)
	if err := f.failOn[collName]; err != nil {
		return err
	}
	f.docs[collName] = append(f.docs[collName], docs...)
	return nil
}

func (f *fakeStore) CreateSeedIndexes(ctx context.Context, userCollName, reviewCollName string) error {
	f.indexCalls++
	return f.indexErr
}

func (f *fakeStore) LastID(ctx context.Context, collName string, field string) (int, bool, error) {
	id, ok := f.lastIDs[collName+"."+field]
	return id, ok, nil
}

func (f *fakeStore) users(collName string) []models.User {
	var out []models.User
	for _, d := range f.docs[collName] {
		out = append(out, d.(models.User))
	}
	return out
}

func (f *fakeStore) reviews(collName string) []models.Review {
	var out []models.Review
	for _, d := range f.docs[collName] {
		out = append(out, d.(models.Review))
	}
	return out
}

func inRange(id, from, to int) bool {
	return id >= from && id < to
}

func (f *fakeStore) FindUsers(ctx context.Context, collName string, from, to int) ([]models.User, error) {
	if err := f.failOn["find:"+collName]; err != nil {
		return nil, err
	}
	var out []models.User
	for _, u := range f.users(collName) {
		if inRange(u.UserId, from, to) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeStore) FindReviews(ctx context.Context, collName string, from, to int) ([]models.Review, error) {
	var out []models.Review
	for _, r := range f.reviews(collName) {
		if inRange(r.UserId, from, to) {
			out = append(out, r)
		}
	}
	return out, nil
}

func userIDOf(d interface{}) int {
	switch v := d.(type) {
	case models.User:
		return v.UserId
	case models.Review:
		return v.UserId
	}
	return -1
}

func (f *fakeStore) CountUserRange(ctx context.Context, collName string, from, to int) (int64, error) {
	var n int64
	for _, d := range f.docs[collName] {
		if inRange(userIDOf(d), from, to) {
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) DeleteUserRange(ctx context.Context, collName string, from, to int) (int64, error) {
	f.calls = append(f.calls, "delete:"+collName)
	if err := f.failOn["delete:"+collName]; err != nil {
		return 0, err
	}
	var kept []interface{}
	var n int64
	for _, d := range f.docs[collName] {
		if inRange(userIDOf(d), from, to) {
			n++
			continue
		}
		kept = append(kept, d)
	}
	f.docs[collName] = kept
	f.deleted[collName] += n
	return n, nil
}

type fakePublisher struct {
	queue    string
	payloads []string
	err      error
}

func (p *fakePublisher) SendMessage(queueName string, payload string, delay int) error {
	if p.err != nil {
		return p.err
	}
	p.queue = queueName
	p.payloads = append(p.payloads, payload)
	return nil
}

var errDuplicateKey = errors.New("E11000 duplicate key error")
