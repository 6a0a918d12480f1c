package handlers_test

import (
	"context"
	"errors"
	"io"
	"sort"

	"unify/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var errStore = errors.New("store unavailable")

// In-mem store fakes. Get methods hand out copies so handler-side mutations
// only land when the matching save is called, mirroring the mongo stores.

type fakeUsers struct {
	users         map[string]*models.User
	failSaveClubs bool
}

func newFakeUsers(users ...*models.User) *fakeUsers {
	f := &fakeUsers{users: make(map[string]*models.User)}
	for _, u := range users {
		f.users[u.ExternalID] = u
	}
	return f
}

func (f *fakeUsers) GetByExternalID(_ context.Context, externalID string) (*models.User, error) {
	u, ok := f.users[externalID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *u
	cp.ClubsFollowed = append([]string(nil), u.ClubsFollowed...)
	return &cp, nil
}

func (f *fakeUsers) SaveClubs(_ context.Context, u *models.User) error {
	if f.failSaveClubs {
		return errStore
	}
	stored, ok := f.users[u.ExternalID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	stored.ClubsFollowed = append([]string(nil), u.ClubsFollowed...)
	stored.ClubsJoined = u.ClubsJoined
	return nil
}

func (f *fakeUsers) AddPoints(_ context.Context, externalID string, delta int) error {
	if u, ok := f.users[externalID]; ok {
		u.Points += delta
	}
	return nil
}

func (f *fakeUsers) UpdateProfile(_ context.Context, externalID string, p models.ProfileUpdate) error {
	u, ok := f.users[externalID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	u.Username = p.Username
	u.Department = p.Department
	u.CurrentYear = p.CurrentYear
	u.PhoneNumber = p.PhoneNumber
	u.Hobbies = p.Hobbies
	u.Bio = p.Bio
	u.GithubProfile = p.GithubProfile
	u.LinkedinURL = p.LinkedinURL
	u.Location = p.Location
	return nil
}

func (f *fakeUsers) SetAvatar(_ context.Context, externalID string, img models.Image) error {
	u, ok := f.users[externalID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	u.Avatar = &img
	return nil
}

func (f *fakeUsers) TopByPoints(_ context.Context, limit int64) ([]models.User, error) {
	all := make([]models.User, 0, len(f.users))
	for _, u := range f.users {
		all = append(all, *u)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Points > all[j].Points })
	if int64(len(all)) > limit {
		all = all[:limit]
	}
	return all, nil
}

type fakeClubs struct {
	clubs map[string]*models.Club
}

func newFakeClubs(clubs ...*models.Club) *fakeClubs {
	f := &fakeClubs{clubs: make(map[string]*models.Club)}
	for _, c := range clubs {
		f.clubs[c.ClubID] = c
	}
	return f
}

func (f *fakeClubs) List(_ context.Context) ([]models.Club, error) {
	all := make([]models.Club, 0, len(f.clubs))
	for _, c := range f.clubs {
		all = append(all, *c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ClubID < all[j].ClubID })
	return all, nil
}

func (f *fakeClubs) GetByClubID(_ context.Context, clubID string) (*models.Club, error) {
	c, ok := f.clubs[clubID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *c
	return &cp, nil
}

func (f *fakeClubs) AdjustFollowers(_ context.Context, clubID string, delta int) (int, error) {
	c, ok := f.clubs[clubID]
	if !ok {
		return 0, mongo.ErrNoDocuments
	}
	c.Followers += delta
	if c.Followers < 0 {
		c.Followers = 0
	}
	return c.Followers, nil
}

type fakePosts struct {
	posts map[primitive.ObjectID]*models.Post
}

func newFakePosts(posts ...*models.Post) *fakePosts {
	f := &fakePosts{posts: make(map[primitive.ObjectID]*models.Post)}
	for _, p := range posts {
		f.posts[p.ID] = p
	}
	return f
}

func (f *fakePosts) List(_ context.Context) ([]models.Post, error) {
	all := make([]models.Post, 0, len(f.posts))
	for _, p := range f.posts {
		all = append(all, *p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt > all[j].CreatedAt })
	return all, nil
}

func (f *fakePosts) Get(_ context.Context, id primitive.ObjectID) (*models.Post, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *p
	cp.LikedBy = append([]string(nil), p.LikedBy...)
	return &cp, nil
}

func (f *fakePosts) Create(_ context.Context, p *models.Post) error {
	f.posts[p.ID] = p
	return nil
}

func (f *fakePosts) SaveReaction(_ context.Context, id primitive.ObjectID, likes int, likedBy []string) error {
	p, ok := f.posts[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	p.Likes = likes
	p.LikedBy = append([]string(nil), likedBy...)
	return nil
}

func (f *fakePosts) Delete(_ context.Context, id primitive.ObjectID) error {
	delete(f.posts, id)
	return nil
}

type fakeQuestions struct {
	questions map[primitive.ObjectID]*models.Question
	failSave  bool
}

func newFakeQuestions(questions ...*models.Question) *fakeQuestions {
	f := &fakeQuestions{questions: make(map[primitive.ObjectID]*models.Question)}
	for _, q := range questions {
		f.questions[q.ID] = q
	}
	return f
}

func (f *fakeQuestions) List(_ context.Context, tag string) ([]models.Question, error) {
	all := make([]models.Question, 0, len(f.questions))
	for _, q := range f.questions {
		if tag != "" && !models.Contains(q.Tags, tag) {
			continue
		}
		all = append(all, *q)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt > all[j].CreatedAt })
	return all, nil
}

func (f *fakeQuestions) Get(_ context.Context, id primitive.ObjectID) (*models.Question, error) {
	q, ok := f.questions[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *q
	cp.Answers = append([]models.Answer(nil), q.Answers...)
	return &cp, nil
}

func (f *fakeQuestions) Create(_ context.Context, q *models.Question) error {
	f.questions[q.ID] = q
	return nil
}

func (f *fakeQuestions) SaveAnswers(_ context.Context, id primitive.ObjectID, answers []models.Answer, solved bool) error {
	if f.failSave {
		return errStore
	}
	q, ok := f.questions[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	q.Answers = append([]models.Answer(nil), answers...)
	q.Solved = solved
	return nil
}

func (f *fakeQuestions) Delete(_ context.Context, id primitive.ObjectID) error {
	delete(f.questions, id)
	return nil
}

type fakeItems struct {
	items map[string]*models.Item
}

func newFakeItems(items ...*models.Item) *fakeItems {
	f := &fakeItems{items: make(map[string]*models.Item)}
	for _, it := range items {
		f.items[it.PublicID] = it
	}
	return f
}

func (f *fakeItems) List(_ context.Context) ([]models.Item, error) {
	all := make([]models.Item, 0, len(f.items))
	for _, it := range f.items {
		all = append(all, *it)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt > all[j].CreatedAt })
	return all, nil
}

func (f *fakeItems) Get(_ context.Context, publicID string) (*models.Item, error) {
	it, ok := f.items[publicID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *it
	return &cp, nil
}

func (f *fakeItems) Create(_ context.Context, it *models.Item) error {
	f.items[it.PublicID] = it
	return nil
}

func (f *fakeItems) Claim(_ context.Context, publicID, claimantID string) (bool, error) {
	it, ok := f.items[publicID]
	if !ok {
		return false, mongo.ErrNoDocuments
	}
	if it.Status != models.ItemStatusActive {
		return false, nil
	}
	it.Status = models.ItemStatusClaimed
	it.ClaimantID = &claimantID
	return true, nil
}

func (f *fakeItems) Delete(_ context.Context, publicID string) error {
	delete(f.items, publicID)
	return nil
}

type fakeMedia struct {
	uploads []string
	deletes []string
}

func (f *fakeMedia) Upload(_ context.Context, _ io.Reader, folder, publicID string) (*models.Image, error) {
	id := folder + "/" + publicID
	f.uploads = append(f.uploads, id)
	return &models.Image{URL: "https://cdn.test/" + id, PublicID: id}, nil
}

func (f *fakeMedia) Delete(_ context.Context, publicID string) error {
	f.deletes = append(f.deletes, publicID)
	return nil
}
