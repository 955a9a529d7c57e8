package usecase

import (
	"context"
	"errors"
	"fmt"

	"user_backend/internal/feature/users/domain/entity"
	usersusecase "user_backend/internal/feature/users/usecase"
)

// dummyHash はメールアドレスが未登録の場合の比較に使用し、
// ユーザー不在とパスワード誤りの処理時間を揃えます。
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UserService は認証が必要とするusersフィーチャーの操作です。
// Goの慣例に従い、インターフェースはプロバイダーではなくコンシューマー（usecase）が定義します。
type UserService interface {
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	CreateUser(ctx context.Context, in usersusecase.CreateUserInput) (*entity.User, error)
}

// PasswordComparer は平文パスワードと保存済みハッシュを比較します。
type PasswordComparer interface {
	Compare(hash, password string) error
}

// JWTGenerator はJWTトークン生成のインターフェースを定義します。
type JWTGenerator interface {
	// GenerateToken は指定されたユーザーの署名済みJWTトークンを生成します。
	GenerateToken(userID uint, email string) (string, error)
}

// authUsecase は認証のビジネスロジックを実装します。
type authUsecase struct {
	users        UserService
	passwords    PasswordComparer
	jwtGenerator JWTGenerator
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserService, passwords PasswordComparer, jwtGenerator JWTGenerator) *authUsecase {
	return &authUsecase{
		users:        users,
		passwords:    passwords,
		jwtGenerator: jwtGenerator,
	}
}

// Login はユーザーを認証し、署名済みJWTトークンを返します。
// タイミング攻撃を緩和するため、ユーザーが存在しない場合もパスワード比較を必ず行います。
func (u *authUsecase) Login(ctx context.Context, email, password string) (string, error) {
	user, err := u.users.GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, usersusecase.ErrUserNotFound) {
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	passwordHash := dummyHash
	if err == nil {
		passwordHash = user.Password
	}
	compareErr := u.passwords.Compare(passwordHash, password)

	if err != nil || compareErr != nil {
		return "", ErrInvalidCredentials
	}

	token, err := u.jwtGenerator.GenerateToken(user.ID, user.Email)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

// Register はユーザーを作成し、そのユーザーとトークンを返します。
// 事前のメール確認をすり抜けた同時登録は一意インデックスで検出し、同じエラーとして返します。
func (u *authUsecase) Register(ctx context.Context, name, email, password string) (*entity.User, string, error) {
	_, err := u.users.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, "", ErrEmailAlreadyExists
	case !errors.Is(err, usersusecase.ErrUserNotFound):
		return nil, "", fmt.Errorf("failed to check email: %w", err)
	}

	user, err := u.users.CreateUser(ctx, usersusecase.CreateUserInput{
		Name:     name,
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, "", err
	}

	token, err := u.jwtGenerator.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}
	return user, token, nil
}
