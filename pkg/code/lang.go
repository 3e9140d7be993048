package code

import "errors"

// lang holds the English and Chinese text of a message
// lang 类型，用来存储英文和中文文本
type lang struct {
	en    string // English // 英文
	zhCN  string // Chinese // 中文
}

// Default language is English // 默认语言为英文
var lng = "en"

const fallbackLng = "en"

var supportedLanguages = []string{"en", "zh-cn"}

// GetMessage returns the message for the current global language
// GetMessage 返回当前全局语言对应的消息
func (l lang) GetMessage() string {
	var msg string
	switch lng {
	case "zh-cn":
		msg = l.zhCN
	default:
		msg = l.en
	}
	if msg == "" {
		msg = l.en
	}
	return msg
}

// GetSupportedLanguages returns all languages supported by the lang type
// GetSupportedLanguages 返回 lang 类型支持的所有语言
func GetSupportedLanguages() []string {
	return supportedLanguages
}

// SetGlobalDefaultLang sets the global default language
// SetGlobalDefaultLang 设置全局默认语言
func SetGlobalDefaultLang(language string) error {
	for _, l := range supportedLanguages {
		if language == l {
			lng = language
			return nil
		}
	}
	lng = fallbackLng
	return errors.New("unsupported language type, set defaulting to " + fallbackLng)
}

// GetGlobalDefaultLang gets the global default language
// GetGlobalDefaultLang 获取全局默认语言
func GetGlobalDefaultLang() string {
	return lng
}
