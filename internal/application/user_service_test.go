package application

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/medico-api/internal/domain/entity"
	"github.com/oksasatya/medico-api/pkg/apperror"
)

type fakeAvatars struct {
	paths []string
}

func (f *fakeAvatars) Upload(_ context.Context, objectPath, _ string, r io.Reader) (string, error) {
	_, _ = io.Copy(io.Discard, r)
	f.paths = append(f.paths, objectPath)
	return "https://cdn.test/" + objectPath, nil
}

type fakeDoctorIndex struct {
	indexed []string
	hits    []entity.UserSummary
	err     error
}

func (f *fakeDoctorIndex) Index(_ context.Context, u *entity.User) error {
	f.indexed = append(f.indexed, u.ID)
	return nil
}

func (f *fakeDoctorIndex) Search(context.Context, string, int) ([]entity.UserSummary, error) {
	return f.hits, f.err
}

func TestRegisterAndLogin(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	u, err := e.users.Register(ctx, RegisterInput{Name: " Nadia ", Email: " Nadia@Medico.Test ", Password: "secret1", Role: entity.RolePatient})
	require.NoError(t, err)
	assert.Equal(t, "nadia@medico.test", u.Email)
	assert.Equal(t, "Nadia", u.Name)
	assert.NotEqual(t, "secret1", u.PasswordHash)

	_, err = e.users.Register(ctx, RegisterInput{Name: "x", Email: "NADIA@medico.test", Password: "secret1", Role: entity.RoleDoctor})
	requireAppErr(t, err, apperror.KindValidation, "Email already registered")

	_, err = e.users.Register(ctx, RegisterInput{Name: "x", Email: "x@medico.test", Password: "secret1", Role: "ADMIN"})
	requireAppErr(t, err, apperror.KindValidation, "")

	res, err := e.users.Login(ctx, "nadia@MEDICO.test", "secret1")
	require.NoError(t, err)
	assert.Equal(t, u.ID, res.User.ID)
	uid, err := e.users.JWT.Verify(res.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, uid)

	_, err = e.users.Login(ctx, "nadia@medico.test", "wrong-pass")
	requireAppErr(t, err, apperror.KindUnauthenticated, "Invalid email or password")
	_, err = e.users.Login(ctx, "nobody@medico.test", "secret1")
	requireAppErr(t, err, apperror.KindUnauthenticated, "Invalid email or password")
}

func TestUpdateProfile(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	taken := "ayu@medico.test"
	_, err := e.users.UpdateProfile(ctx, e.patient, UpdateProfileInput{Email: &taken})
	requireAppErr(t, err, apperror.KindValidation, "Email already in use")

	name, email, pwd := "Bryan A.", "bryan.a@medico.test", "newsecret"
	u, err := e.users.UpdateProfile(ctx, e.patient, UpdateProfileInput{Name: &name, Email: &email, Password: &pwd})
	require.NoError(t, err)
	assert.Equal(t, "Bryan A.", u.Name)
	assert.Equal(t, entity.RolePatient, u.Role)

	_, err = e.users.Login(ctx, email, pwd)
	assert.NoError(t, err)
}

func TestUploadAvatar(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	_, err := e.users.UploadAvatar(ctx, e.patient, strings.NewReader("img"), "me.png", "image/png")
	requireAppErr(t, err, apperror.KindUnavailable, "")

	store := &fakeAvatars{}
	e.users.Avatars = store

	_, err = e.users.UploadAvatar(ctx, e.patient, strings.NewReader("pdf"), "cv.pdf", "application/pdf")
	requireAppErr(t, err, apperror.KindValidation, "Avatar must be an image")

	u, err := e.users.UploadAvatar(ctx, e.patient, strings.NewReader("img"), "me.png", "image/png")
	require.NoError(t, err)
	require.Len(t, store.paths, 1)
	require.NotNil(t, u.ImageURL)
	assert.Equal(t, "https://cdn.test/"+store.paths[0], *u.ImageURL)

	profile, err := e.users.GetProfile(ctx, e.patient.ID)
	require.NoError(t, err)
	assert.Equal(t, u.ImageURL, profile.ImageURL)
}

func TestListDoctors(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	all, err := e.users.ListDoctors(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Ayu", all[0].Name)

	idx := &fakeDoctorIndex{hits: []entity.UserSummary{{ID: "from-es", Name: "Kasyfil"}}}
	e.users.Doctors = idx

	found, err := e.users.ListDoctors(ctx, "kas")
	require.NoError(t, err)
	assert.Equal(t, "from-es", found[0].ID)

	idx.err = errors.New("es down")
	found, err = e.users.ListDoctors(ctx, "kas")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, e.doctor.ID, found[0].ID)

	doc, err := e.users.Register(ctx, RegisterInput{Name: "New Doc", Email: "newdoc@medico.test", Password: "secret1", Role: entity.RoleDoctor})
	require.NoError(t, err)
	assert.Contains(t, idx.indexed, doc.ID)
}
