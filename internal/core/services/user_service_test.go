package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/komunity_app/internal/apperrors"
	"github.com/SscSPs/komunity_app/internal/core/domain"
	portssvc "github.com/SscSPs/komunity_app/internal/core/ports/services"
	"github.com/SscSPs/komunity_app/internal/core/services"
	"github.com/SscSPs/komunity_app/internal/dto"
	"github.com/SscSPs/komunity_app/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockUserRepo, time.Hour)
}

// --- RegisterUser Tests ---
func (suite *UserServiceTestSuite) TestRegisterUser_Success() {
	ctx := context.Background()
	req := dto.SignUpRequest{Email: "  Ama@Example.com ", Password: "password123"}

	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.Email == "ama@example.com" &&
			user.PasswordHash != "" &&
			user.PasswordHash != req.Password &&
			utils.CheckPasswordHash(req.Password, user.PasswordHash)
	})).Return(&domain.User{UserID: 7, Email: "ama@example.com"}, nil).Once()

	user, err := suite.service.RegisterUser(ctx, req)

	suite.Require().NoError(err)
	suite.Equal(int64(7), user.UserID)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestRegisterUser_Duplicate() {
	ctx := context.Background()
	req := dto.SignUpRequest{Email: "ama@example.com", Password: "password123"}

	suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(nil, apperrors.ErrDuplicate).Once()

	user, err := suite.service.RegisterUser(ctx, req)

	suite.Require().Error(err)
	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	detail, ok := apperrors.DetailOf(err)
	suite.True(ok)
	suite.Equal("A user with that email already exists.", detail)
}

func (suite *UserServiceTestSuite) TestRegisterUser_RepoError() {
	ctx := context.Background()
	suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(nil, assert.AnError).Once()

	_, err := suite.service.RegisterUser(ctx, dto.SignUpRequest{Email: "ama@example.com", Password: "password123"})

	suite.Require().Error(err)
	suite.ErrorIs(err, assert.AnError)
	suite.Contains(err.Error(), "failed to create user")
}

// --- AuthenticateUser Tests ---
func (suite *UserServiceTestSuite) TestAuthenticateUser_Success() {
	ctx := context.Background()
	hash, err := utils.HashPassword("password123")
	suite.Require().NoError(err)
	stored := &domain.User{UserID: 7, Email: "ama@example.com", PasswordHash: hash}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "ama@example.com").Return(stored, nil).Once()

	user, err := suite.service.AuthenticateUser(ctx, "AMA@example.com", "password123")

	suite.Require().NoError(err)
	suite.Equal(stored, user)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_WrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("password123")
	suite.Require().NoError(err)

	suite.mockUserRepo.On("FindUserByEmail", ctx, "ama@example.com").
		Return(&domain.User{UserID: 7, PasswordHash: hash}, nil).Once()

	user, err := suite.service.AuthenticateUser(ctx, "ama@example.com", "not-it")

	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	detail, _ := apperrors.DetailOf(err)
	suite.Equal("Unable to log in with provided credentials.", detail)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_UnknownEmail() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "ghost@example.com").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.AuthenticateUser(ctx, "ghost@example.com", "password123")

	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.NotErrorIs(err, apperrors.ErrNotFound)
}

// --- Password reset Tests ---
func (suite *UserServiceTestSuite) TestRequestPasswordReset_UnknownEmailSucceeds() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "ghost@example.com").Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.RequestPasswordReset(ctx, "ghost@example.com")

	suite.NoError(err)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveResetToken", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestRequestPasswordReset_SavesHashedToken() {
	ctx := context.Background()
	before := time.Now().UTC()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "ama@example.com").Return(&domain.User{UserID: 7}, nil).Once()
	suite.mockUserRepo.On("SaveResetToken", ctx, int64(7), mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).
		Return(nil).Once().
		Run(func(args mock.Arguments) {
			hash := args.String(2)
			expiry := args.Get(3).(time.Time)
			suite.Len(hash, 64)
			suite.True(expiry.After(before.Add(59 * time.Minute)))
		})

	suite.NoError(suite.service.RequestPasswordReset(ctx, "ama@example.com"))
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestConfirmPasswordReset_Success() {
	ctx := context.Background()
	token := "reset-token"
	suite.mockUserRepo.On("FindUserByResetTokenHash", ctx, utils.HashResetToken(token), mock.AnythingOfType("time.Time")).
		Return(&domain.User{UserID: 7}, nil).Once()
	suite.mockUserRepo.On("UpdatePassword", ctx, int64(7), mock.MatchedBy(func(hash string) bool {
		return utils.CheckPasswordHash("new-password", hash)
	})).Return(nil).Once()

	suite.NoError(suite.service.ConfirmPasswordReset(ctx, token, "new-password"))
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestConfirmPasswordReset_InvalidToken() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByResetTokenHash", ctx, mock.Anything, mock.Anything).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.ConfirmPasswordReset(ctx, "bogus", "new-password")

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
}

// --- GetUserByID Tests ---
func (suite *UserServiceTestSuite) TestGetUserByID_NotFound() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByID", ctx, int64(99)).Return(nil, apperrors.ErrNotFound).Once()

	user, err := suite.service.GetUserByID(ctx, 99)

	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
