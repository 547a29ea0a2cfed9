package v1

import (
	"errors"
	"net/http"

	"github.com/rei-kenpai/backend/internal/service"
)

// User-facing error strings. The admin UI branches on these by substring, so
// they are part of the contract, not just display copy.
const (
	MsgMissingFields      = "必須項目が不足しています"
	MsgHomeNameTaken      = "この葬儀社名は既に登録されています"
	MsgEmailTaken         = "このメールアドレスは既に使用されています"
	MsgEmailNotRegistered = "このメールアドレスは登録されていません"
	MsgInvalidHomeName    = "葬儀社名に使用できない文字が含まれています"
	MsgWeakPassword       = "パスワードは6文字以上で設定してください"
	MsgInvalidCode        = "認証コードが正しくありません"
	MsgExpiredCode        = "認証コードの有効期限が切れています"
	MsgBadCredentials     = "メールアドレスまたはパスワードが正しくありません"
	MsgHomeNotFound       = "葬儀社が見つかりません"
	MsgProjectNotFound    = "プロジェクトが見つかりません"
	MsgSlugTaken          = "このURLは既に使用されています"
	MsgUnknownError       = "エラーが発生しました"
)

func statusAndMessage(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrHomeNameTaken):
		return http.StatusBadRequest, MsgHomeNameTaken
	case errors.Is(err, service.ErrEmailTaken):
		return http.StatusBadRequest, MsgEmailTaken
	case errors.Is(err, service.ErrEmailNotRegistered):
		return http.StatusBadRequest, MsgEmailNotRegistered
	case errors.Is(err, service.ErrInvalidHomeName):
		return http.StatusBadRequest, MsgInvalidHomeName
	case errors.Is(err, service.ErrWeakPassword):
		return http.StatusBadRequest, MsgWeakPassword
	case errors.Is(err, service.ErrInvalidCode):
		return http.StatusBadRequest, MsgInvalidCode
	case errors.Is(err, service.ErrExpiredCode):
		return http.StatusBadRequest, MsgExpiredCode
	case errors.Is(err, service.ErrHomeNotFound):
		return http.StatusNotFound, MsgHomeNotFound
	case errors.Is(err, service.ErrProjectNotFound):
		return http.StatusNotFound, MsgProjectNotFound
	case errors.Is(err, service.ErrSlugTaken):
		return http.StatusBadRequest, MsgSlugTaken
	default:
		return http.StatusInternalServerError, MsgUnknownError
	}
}
