package usecase

import (
	"context"
	"errors"
	"fmt"

	"user_backend/internal/feature/users/domain/entity"
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// FindAll は保存されている全ユーザーを返します。
	FindAll(ctx context.Context) ([]entity.User, error)

	// FindByID は指定されたIDのユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// FindByEmail はメールアドレスに一致するユーザーを取得します。excludeIDが0以外ならそのユーザーを除外します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByEmail(ctx context.Context, email string, excludeID uint) (*entity.User, error)

	// Create は新しいユーザーを永続化します。一意制約違反時はErrEmailAlreadyExistsを返します。
	Create(ctx context.Context, user *entity.User) error

	// Update はカラムの変更を適用し、更新後のユーザーを返します。
	Update(ctx context.Context, id uint, changes map[string]any) (*entity.User, error)

	// Delete はユーザーを物理削除します。
	Delete(ctx context.Context, id uint) error
}

// PasswordHasher はリポジトリに渡す前に平文パスワードをハッシュ化します。
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// CreateUserInput はユーザー作成に必要な項目を保持します。
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
}

// UpdateUserInput は部分更新の内容を保持します。nilの項目は変更しません。
type UpdateUserInput struct {
	Name     *string
	Email    *string
	Password *string
}

// UserUsecase はユーザー管理のビジネスロジックを提供します。
type UserUsecase struct {
	repo   UserRepository
	hasher PasswordHasher
}

// NewUserUsecase はUserUsecaseの新しいインスタンスを生成します。
func NewUserUsecase(repo UserRepository, hasher PasswordHasher) *UserUsecase {
	return &UserUsecase{repo: repo, hasher: hasher}
}

// ListUsers は全ユーザーを返します。
func (u *UserUsecase) ListUsers(ctx context.Context) ([]entity.User, error) {
	return u.repo.FindAll(ctx)
}

// GetUser はIDでユーザーを1件取得します。
func (u *UserUsecase) GetUser(ctx context.Context, id uint) (*entity.User, error) {
	return u.repo.FindByID(ctx, id)
}

// GetUserByEmail は指定されたメールアドレスのユーザーを返します。
func (u *UserUsecase) GetUserByEmail(ctx context.Context, email string) (*entity.User, error) {
	return u.repo.FindByEmail(ctx, email, 0)
}

// CreateUser はパスワードをハッシュ化して新しいユーザーを保存します。
func (u *UserUsecase) CreateUser(ctx context.Context, in CreateUserInput) (*entity.User, error) {
	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: hashed,
	}
	if err := u.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUser は既存ユーザーに部分更新を適用します。
// - メールアドレス指定時は他のユーザーと重複していないことを確認
// - パスワード指定時は再ハッシュ化
func (u *UserUsecase) UpdateUser(ctx context.Context, id uint, in UpdateUserInput) (*entity.User, error) {
	current, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	changes := make(map[string]any, 3)
	if in.Name != nil {
		changes["name"] = *in.Name
	}
	if in.Email != nil {
		_, err := u.repo.FindByEmail(ctx, *in.Email, id)
		switch {
		case err == nil:
			return nil, ErrEmailAlreadyExists
		case !errors.Is(err, ErrUserNotFound):
			return nil, err
		}
		changes["email"] = *in.Email
	}
	if in.Password != nil {
		hashed, err := u.hasher.Hash(*in.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		changes["password"] = hashed
	}

	if len(changes) == 0 {
		return current, nil
	}
	return u.repo.Update(ctx, id, changes)
}

// DeleteUser はユーザーを削除します。存在しないユーザーの削除も成功として扱います。
func (u *UserUsecase) DeleteUser(ctx context.Context, id uint) error {
	return u.repo.Delete(ctx, id)
}
