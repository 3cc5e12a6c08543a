package utils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// Session anahtarları
const (
	SessionKeyUserID   = "user_id"
	SessionKeyUserName = "user_name"
	SessionKeyIsSystem = "is_system"
)

var (
	ErrSessionStoreMissing = errors.New("session store locals içinde bulunamadı")
	ErrUserIDMissing       = errors.New("session'da kullanıcı ID'si yok")
	ErrIsSystemMissing     = errors.New("session'da is_system bilgisi yok")
)

// SessionStart locals'a konan store üzerinden isteğin session'ını açar.
func SessionStart(c *fiber.Ctx) (*session.Session, error) {
	store, ok := c.Locals("session_store").(*session.Store)
	if !ok || store == nil {
		return nil, ErrSessionStoreMissing
	}
	return store.Get(c)
}

// GetUserIDFromSession giriş yapmış kullanıcının ID'sini döndürür.
func GetUserIDFromSession(sess *session.Session) (uint, error) {
	id, ok := sess.Get(SessionKeyUserID).(uint)
	if !ok || id == 0 {
		return 0, ErrUserIDMissing
	}
	return id, nil
}

// GetIsSystemFromSession kullanıcının sistem yöneticisi olup olmadığını döndürür.
func GetIsSystemFromSession(sess *session.Session) (bool, error) {
	isSystem, ok := sess.Get(SessionKeyIsSystem).(bool)
	if !ok {
		return false, ErrIsSystemMissing
	}
	return isSystem, nil
}

// SetUserSession giriş sonrası session alanlarını yazar.
func SetUserSession(sess *session.Session, userID uint, userName string, isSystem bool) error {
	sess.Set(SessionKeyUserID, userID)
	sess.Set(SessionKeyUserName, userName)
	sess.Set(SessionKeyIsSystem, isSystem)
	return sess.Save()
}

// DestroySession oturumu tamamen sonlandırır (logout).
func DestroySession(sess *session.Session) error {
	return sess.Destroy()
}
