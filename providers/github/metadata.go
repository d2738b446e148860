package github

import (
	"embed"

	"github.com/giantswarm/social-connector/providers"
)

// Connector identity
const (
	ConnectorID = "github-universal"
	Target      = "github"
)

//go:embed README.md
var readme string

// Assets holds the logos referenced by the metadata, relative to the package.
// Hosts serve them next to the descriptor.
//
//go:embed logo.svg logo-dark.svg
var Assets embed.FS

const configTemplate = `{
  "clientId": "<client-id>",
  "clientSecret": "<client-secret>"
}`

var defaultMetadata = providers.Metadata{
	ID:       ConnectorID,
	Target:   Target,
	Platform: providers.PlatformUniversal,
	Name: map[string]string{
		"en":    "GitHub",
		"zh-CN": "GitHub",
		"tr-TR": "GitHub",
		"ko":    "GitHub",
	},
	Description: map[string]string{
		"en":    "GitHub is a provider of Internet hosting for software development and version control.",
		"zh-CN": "GitHub 是一个在线软件源代码托管服务平台。",
		"tr-TR": "GitHub, yazılım geliştirme ve sürüm kontrolü için İnternet barındırma hizmeti sağlayıcısıdır.",
		"ko":    "GitHub는 소프트웨어 개발 및 버전 관리를 위한 인터넷 호스팅 제공업체입니다.",
	},
	LogoURL:        "./logo.svg",
	LogoDarkURL:    "./logo-dark.svg",
	Readme:         readme,
	ConfigTemplate: configTemplate,
	FormItems: []providers.FormItem{
		{
			Key:         "clientId",
			Label:       "Client ID",
			Type:        "Text",
			Required:    true,
			Placeholder: "<client-id>",
		},
		{
			Key:         "clientSecret",
			Label:       "Client Secret",
			Type:        "Text",
			Required:    true,
			Placeholder: "<client-secret>",
		},
	},
}

// DefaultMetadata returns a copy of the GitHub connector descriptor.
func DefaultMetadata() providers.Metadata {
	return defaultMetadata.Clone()
}
