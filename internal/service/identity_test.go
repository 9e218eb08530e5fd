package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/apperr"
	"github.com/ANIKETSHETTY47/dam-monitoring-system/internal/domain"
)

func registration(email string) domain.RegisterInput {
	return domain.RegisterInput{
		Name: "Asha", Email: email, Password: "pa55word", Mobile: "9999999999",
		Place: "Pune", State: "Maharashtra",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svcs := newTestServices(t)

	sess, err := svcs.Identity.Register(ctx, registration("asha@example.com"), nil)
	require.NoError(t, err)
	assert.NotEmpty(t, sess.Token)
	assert.NotEmpty(t, sess.RefreshToken)
	assert.Equal(t, domain.RoleUser, sess.User.Role)
	assert.NotEqual(t, "pa55word", sess.User.PasswordHash)

	_, err = svcs.Identity.Login(ctx, "asha@example.com", "wrong")
	assert.ErrorIs(t, err, apperr.InvalidCredentials("Invalid credentials"))
	_, err = svcs.Identity.Login(ctx, "nobody@example.com", "pa55word")
	assert.ErrorIs(t, err, apperr.InvalidCredentials("Invalid credentials"))

	sess, err = svcs.Identity.Login(ctx, "ASHA@example.com", "pa55word")
	require.NoError(t, err)
	claims, err := svcs.Identity.Authenticate(sess.Token)
	require.NoError(t, err)
	assert.Equal(t, sess.User.ID, claims.ID)
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	svcs := newTestServices(t)

	in := registration("x@example.com")
	in.Mobile = ""
	_, err := svcs.Identity.Register(ctx, in, nil)
	assert.ErrorIs(t, err, apperr.Validation("Please fill all required fields"))

	in = registration("x@example.com")
	in.Role = "superuser"
	_, err = svcs.Identity.Register(ctx, in, nil)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	in = registration("gov@example.com")
	in.Role = "govt"
	sess, err := svcs.Identity.Register(ctx, in, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleGovt, sess.User.Role)
}

func TestRegisterAdminOnlyForFirstAccount(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		want     domain.Role
	}{
		{"first account becomes admin", nil, domain.RoleAdmin},
		{"later request is downgraded", []string{"first@example.com"}, domain.RoleUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			svcs := newTestServices(t)
			for _, email := range tt.existing {
				_, err := svcs.Identity.Register(ctx, registration(email), nil)
				require.NoError(t, err)
			}

			in := registration("boss@example.com")
			in.Role = string(domain.RoleAdmin)
			sess, err := svcs.Identity.Register(ctx, in, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, sess.User.Role)

			claims, err := svcs.Identity.Authenticate(sess.Token)
			require.NoError(t, err)
			assert.Equal(t, tt.want, claims.Role)
		})
	}
}

func TestRegisterDuplicateEmailCreatesNoUser(t *testing.T) {
	ctx := context.Background()
	svcs := newTestServices(t)

	_, err := svcs.Identity.Register(ctx, registration("dup@example.com"), nil)
	require.NoError(t, err)
	before, err := svcs.Repos.Users.Count(ctx)
	require.NoError(t, err)

	_, err = svcs.Identity.Register(ctx, registration("dup@example.com"), nil)
	assert.ErrorIs(t, err, apperr.Validation("User already exists"))

	after, err := svcs.Repos.Users.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

type memImages struct{ err error }

func (m memImages) UploadProfileImage(_ context.Context, userID, filename, _ string, _ []byte) (string, error) {
	return "https://images.invalid/" + userID + "/" + filename, m.err
}

func TestRegisterUploadsProfileImage(t *testing.T) {
	ctx := context.Background()
	svcs := newTestServices(t, func(o *Options) { o.Images = memImages{} })

	sess, err := svcs.Identity.Register(ctx, registration("img@example.com"),
		&ProfileImage{Filename: "me.png", ContentType: "image/png", Body: []byte{1, 2, 3}})
	require.NoError(t, err)
	require.NotNil(t, sess.User.ProfileImage)
	assert.Contains(t, *sess.User.ProfileImage, "me.png")

	u, err := svcs.Identity.Profile(ctx, sess.User.ID)
	require.NoError(t, err)
	assert.Equal(t, sess.User.ProfileImage, u.ProfileImage)

	failing := newTestServices(t, func(o *Options) { o.Images = memImages{err: errors.New("s3 down")} })
	sess, err = failing.Identity.Register(ctx, registration("img@example.com"),
		&ProfileImage{Filename: "me.png", Body: []byte{1}})
	require.NoError(t, err)
	assert.Nil(t, sess.User.ProfileImage)
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()
	svcs := newTestServices(t)
	sess, err := svcs.Identity.Register(ctx, registration("r@example.com"), nil)
	require.NoError(t, err)

	_, err = svcs.Identity.Refresh(ctx, "")
	assert.ErrorIs(t, err, apperr.Unauthenticated("No refresh token provided"))

	_, err = svcs.Identity.Refresh(ctx, "garbage")
	assert.ErrorIs(t, err, apperr.Forbidden("Invalid or expired refresh token"))

	// An access token is not a refresh token.
	_, err = svcs.Identity.Refresh(ctx, sess.Token)
	assert.True(t, apperr.IsKind(err, apperr.KindForbidden))

	access, err := svcs.Identity.Refresh(ctx, sess.RefreshToken)
	require.NoError(t, err)
	claims, err := svcs.Identity.Authenticate(access)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, claims.Role)
}

func TestProfileNotFound(t *testing.T) {
	_, err := newTestServices(t).Identity.Profile(context.Background(), "missing")
	assert.ErrorIs(t, err, apperr.NotFound("User not found"))
}

func TestToggleSavedDamTwiceRestoresSet(t *testing.T) {
	ctx := context.Background()
	svcs := newTestServices(t)
	tr := seedTree(t, svcs, "Punjab", "Bhakra", "Pong")
	sess, err := svcs.Identity.Register(ctx, registration("s@example.com"), nil)
	require.NoError(t, err)
	uid := sess.User.ID

	dams, err := svcs.Identity.ToggleSavedDam(ctx, uid, tr.Dams[0].ID)
	require.NoError(t, err)
	require.Len(t, dams, 1)

	before, err := svcs.Identity.SavedDams(ctx, uid)
	require.NoError(t, err)

	_, err = svcs.Identity.ToggleSavedDam(ctx, uid, tr.Dams[1].ID)
	require.NoError(t, err)
	dams, err = svcs.Identity.ToggleSavedDam(ctx, uid, tr.Dams[1].ID)
	require.NoError(t, err)
	require.Len(t, dams, 1)
	assert.Equal(t, []string{tr.Dams[0].ID}, []string{dams[0].ID})

	after, err := svcs.Identity.SavedDams(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	_, err = svcs.Identity.ToggleSavedDam(ctx, uid, "missing")
	assert.ErrorIs(t, err, apperr.NotFound("Dam not found"))
	_, err = svcs.Identity.ToggleSavedDam(ctx, "nobody", tr.Dams[0].ID)
	assert.ErrorIs(t, err, apperr.NotFound("User not found"))
}
