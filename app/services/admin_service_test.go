package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/YildirimDemir/E-Commerce-Project-Admin/app/models"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/app/repositories"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/pkg/auth"
)

// fakeAdminStore is an in-memory AdminStore with a unique email guard.
type fakeAdminStore struct {
	admins map[primitive.ObjectID]*models.Admin
}

func newFakeAdminStore(admins ...*models.Admin) *fakeAdminStore {
	f := &fakeAdminStore{admins: map[primitive.ObjectID]*models.Admin{}}
	for _, a := range admins {
		f.admins[a.ID] = a
	}
	return f
}

func (f *fakeAdminStore) FindByEmail(_ context.Context, email string) (*models.Admin, error) {
	for _, a := range f.admins {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeAdminStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Admin, error) {
	a, ok := f.admins[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAdminStore) List(context.Context) ([]models.Admin, error) {
	out := []models.Admin{}
	for _, a := range f.admins {
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeAdminStore) Insert(_ context.Context, admin *models.Admin) error {
	for _, a := range f.admins {
		if a.Email == admin.Email {
			return repositories.ErrDuplicateKey
		}
	}
	admin.ID = primitive.NewObjectID()
	cp := *admin
	f.admins[admin.ID] = &cp
	return nil
}

func (f *fakeAdminStore) Update(_ context.Context, id primitive.ObjectID, set bson.M) (*models.Admin, error) {
	a, ok := f.admins[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	if name, ok := set["name"].(string); ok {
		a.Name = name
	}
	if email, ok := set["email"].(string); ok {
		a.Email = email
	}
	if password, ok := set["password"].(string); ok {
		a.Password = password
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAdminStore) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.admins[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.admins, id)
	return nil
}

func seedAdmin(t *testing.T, name, email, password string) *models.Admin {
	t.Helper()
	hashed, err := auth.HashPassword(password)
	require.NoError(t, err)
	return &models.Admin{ID: primitive.NewObjectID(), Name: name, Email: email, Password: hashed}
}

func TestLogin(t *testing.T) {
	admin := seedAdmin(t, "Root", "root@example.com", "secret123")
	svc := NewAuthService(newFakeAdminStore(admin))
	ctx := context.Background()

	got, token, err := svc.Login(ctx, "root@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, got.ID)
	require.NotEmpty(t, token)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, admin.ID.Hex(), claims.ID)
	assert.Equal(t, "admin", claims.Role)

	_, _, err = svc.Login(ctx, "root@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredential)

	_, _, err = svc.Login(ctx, "ghost@example.com", "secret123")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestAdminCreateHashesPasswordAndRejectsDuplicates(t *testing.T) {
	store := newFakeAdminStore()
	svc := NewAdminService(store)
	ctx := context.Background()

	created, err := svc.Create(ctx, "Ops", "ops@example.com", "hunter22")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter22", created.Password)
	assert.True(t, auth.CheckPassword(created.Password, "hunter22"))
	assert.Equal(t, models.RoleAdmin, created.Role)

	_, err = svc.Create(ctx, "Ops Again", "ops@example.com", "hunter22")
	assert.ErrorIs(t, err, repositories.ErrDuplicateKey)
}

func TestAdminDeleteGuardsSelf(t *testing.T) {
	admin := seedAdmin(t, "Root", "root@example.com", "secret123")
	other := seedAdmin(t, "Other", "other@example.com", "secret123")
	store := newFakeAdminStore(admin, other)
	svc := NewAdminService(store)
	ctx := context.Background()

	err := svc.Delete(ctx, admin.ID.Hex(), admin.ID.Hex())
	assert.ErrorIs(t, err, ErrSelfDelete)

	require.NoError(t, svc.Delete(ctx, admin.ID.Hex(), other.ID.Hex()))
	assert.Len(t, store.admins, 1)

	err = svc.Delete(ctx, admin.ID.Hex(), "not-an-id")
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestAdminUpdateSettings(t *testing.T) {
	admin := seedAdmin(t, "Root", "root@example.com", "secret123")
	svc := NewAdminService(newFakeAdminStore(admin))
	ctx := context.Background()

	name := "Renamed"
	password := "newpass99"
	got, err := svc.UpdateSettings(ctx, admin.ID.Hex(), AdminSettingsInput{Name: &name, Password: &password})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	assert.True(t, auth.CheckPassword(got.Password, "newpass99"))

	_, err = svc.UpdateSettings(ctx, admin.ID.Hex(), AdminSettingsInput{})
	assert.ErrorIs(t, err, ErrNoFields)
}
