package registry

import "github.com/poiesic/medlex/core"

// seedLanguages is the initial language set registered on first start.
var seedLanguages = []core.Language{
	{Code: "en", Label: "English", NativeName: "English"},
	{Code: "es", Label: "Spanish", NativeName: "Español"},
	{Code: "fr", Label: "French", NativeName: "Français"},
	{Code: "de", Label: "German", NativeName: "Deutsch"},
	{Code: "it", Label: "Italian", NativeName: "Italiano"},
	{Code: "pt", Label: "Portuguese", NativeName: "Português"},
	{Code: "ru", Label: "Russian", NativeName: "Русский"},
	{Code: "zh", Label: "Chinese", NativeName: "中文"},
	{Code: "ja", Label: "Japanese", NativeName: "日本語"},
	{Code: "ko", Label: "Korean", NativeName: "한국어"},
	{Code: "ar", Label: "Arabic", NativeName: "العربية"},
	{Code: "hi", Label: "Hindi", NativeName: "हिन्दी"},
	{Code: "pl", Label: "Polish", NativeName: "Polski"},
	{Code: "tr", Label: "Turkish", NativeName: "Türkçe"},
}
