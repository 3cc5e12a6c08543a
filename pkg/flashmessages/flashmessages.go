package flashmessages

import (
	"encoding/json"

	"lovelens.link/utils"

	"github.com/gofiber/fiber/v2"
)

const (
	FlashSuccessKey  = "flash_success"
	FlashErrorKey    = "flash_error"
	flashFormDataKey = "flash_form_data"
)

// FlashData bir sonraki istekte gösterilecek tek seferlik mesajlar.
type FlashData struct {
	Success string
	Error   string
}

// SetFlashMessage verilen anahtara tek seferlik mesaj yazar.
func SetFlashMessage(c *fiber.Ctx, key, message string) error {
	sess, err := utils.SessionStart(c)
	if err != nil {
		return err
	}
	sess.Set(key, message)
	return sess.Save()
}

// GetFlashMessages mesajları okur ve session'dan temizler.
func GetFlashMessages(c *fiber.Ctx) (FlashData, error) {
	var data FlashData
	sess, err := utils.SessionStart(c)
	if err != nil {
		return data, err
	}
	if v, ok := sess.Get(FlashSuccessKey).(string); ok {
		data.Success = v
		sess.Delete(FlashSuccessKey)
	}
	if v, ok := sess.Get(FlashErrorKey).(string); ok {
		data.Error = v
		sess.Delete(FlashErrorKey)
	}
	return data, sess.Save()
}

// SetFlashFormData hatalı form gönderimindeki veriyi bir sonraki
// render için saklar (JSON olarak).
func SetFlashFormData(c *fiber.Ctx, form interface{}) error {
	sess, err := utils.SessionStart(c)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(form)
	if err != nil {
		return err
	}
	sess.Set(flashFormDataKey, string(raw))
	return sess.Save()
}

// GetFlashFormData saklanan form verisini okur ve temizler.
func GetFlashFormData(c *fiber.Ctx) map[string]interface{} {
	sess, err := utils.SessionStart(c)
	if err != nil {
		return nil
	}
	raw, ok := sess.Get(flashFormDataKey).(string)
	if !ok || raw == "" {
		return nil
	}
	sess.Delete(flashFormDataKey)
	_ = sess.Save()

	var form map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &form); err != nil {
		return nil
	}
	return form
}
