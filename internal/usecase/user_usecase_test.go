package usecase_test

import (
	"context"
	"testing"

	"shop/internal/domain/model"
	repo "shop/internal/repository"
	"shop/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type ProfileUserRepoMock struct{ mock.Mock }

func (m *ProfileUserRepoMock) Create(ctx context.Context, user *model.User) error {
	panic("not used in UserUsecase tests")
}

func (m *ProfileUserRepoMock) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *ProfileUserRepoMock) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	panic("not used in UserUsecase tests")
}

func (m *ProfileUserRepoMock) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *ProfileUserRepoMock) List(ctx context.Context) ([]model.User, error) {
	panic("not used in UserUsecase tests")
}

func (m *ProfileUserRepoMock) UpdateRole(ctx context.Context, userID int64, role model.Role) error {
	panic("not used in UserUsecase tests")
}

func (m *ProfileUserRepoMock) Count(ctx context.Context) (int64, error) {
	panic("not used in UserUsecase tests")
}

func TestUserUsecase_GetProfile_NotFound(t *testing.T) {
	users := new(ProfileUserRepoMock)
	users.On("FindByID", mock.Anything, int64(9)).Return(nil, repo.ErrNotFound)

	uc := usecase.NewUserUsecase(users)

	_, err := uc.GetProfile(context.Background(), 9)
	assertErrContains(t, err, "user not found")
}

func TestUserUsecase_GetProfile_Success(t *testing.T) {
	users := new(ProfileUserRepoMock)
	users.On("FindByID", mock.Anything, int64(1)).Return(&model.User{
		ID:    1,
		Name:  "Bat",
		Email: "bat@example.com",
		Role:  model.RoleUser,
	}, nil)

	uc := usecase.NewUserUsecase(users)

	out, err := uc.GetProfile(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), out.ID)
	assert.Equal(t, "Bat", out.Name)
}

// 空フィールドは変えず、住所は丸ごと置き換える
func TestUserUsecase_UpdateProfile_KeepsBlankFields(t *testing.T) {
	ctx := context.Background()

	users := new(ProfileUserRepoMock)
	users.On("FindByID", mock.Anything, int64(1)).Return(&model.User{
		ID:          1,
		Name:        "Bat",
		PhoneNumber: "99112233",
	}, nil)

	users.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.Name == "Bat" &&
			u.PhoneNumber == "88223344" &&
			u.Address.City == "Ulaanbaatar"
	})).Return(nil)

	uc := usecase.NewUserUsecase(users)

	out, err := uc.UpdateProfile(ctx, 1, usecase.UpdateProfileInput{
		Name:        "  ",
		PhoneNumber: "88223344",
		Address:     model.Address{City: "Ulaanbaatar", District: "Sukhbaatar"},
	})
	assert.NoError(t, err)
	assert.Equal(t, "Bat", out.Name)
	assert.Equal(t, "88223344", out.PhoneNumber)
	assert.Equal(t, "Ulaanbaatar", out.Address.City)

	users.AssertExpectations(t)
}
