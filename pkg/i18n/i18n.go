// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package i18n

import (
	"bytes"
	"encoding/json"
	"io/fs"
	"text/template"

	"github.com/gofiber/contrib/fiberi18n/v2"
	"github.com/gofiber/fiber/v2"
	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

// Conf i18n configuration. Bundles are read as <lang>.json from the
// message filesystem.
type Conf struct {
	DefaultLanguage string
	Languages       []string
}

// SetDefaults falls back to Indonesian with an English bundle
func (c *Conf) SetDefaults() {
	if c.DefaultLanguage == "" {
		c.DefaultLanguage = "id"
	}
	if len(c.Languages) == 0 {
		c.Languages = []string{"id", "en"}
	}
}

// New returns the localisation middleware. Unknown language tags in
// conf are skipped.
func New(conf Conf, messages fs.FS) fiber.Handler {
	conf.SetDefaults()

	def, err := language.Parse(conf.DefaultLanguage)
	if err != nil {
		def = language.Indonesian
	}
	tags := make([]language.Tag, 0, len(conf.Languages))
	for _, l := range conf.Languages {
		if tag, err := language.Parse(l); err == nil {
			tags = append(tags, tag)
		}
	}

	return fiberi18n.New(&fiberi18n.Config{
		RootPath:         ".",
		AcceptLanguages:  tags,
		FormatBundleFile: "json",
		DefaultLanguage:  def,
		UnmarshalFunc:    json.Unmarshal,
		Loader: fiberi18n.LoaderFunc(func(path string) ([]byte, error) {
			return fs.ReadFile(messages, path)
		}),
	})
}

// T localises messageID for the request language. When no bundle
// matches, fallback is rendered with data instead.
func T(c *fiber.Ctx, messageID, fallback string, data map[string]any) (msg string) {
	defer func() {
		// fiberi18n panics when its middleware is not installed
		if r := recover(); r != nil || msg == "" {
			msg = applyTemplate(fallback, data)
		}
	}()

	msg, _ = fiberi18n.Localize(c, &goi18n.LocalizeConfig{
		MessageID:    messageID,
		TemplateData: data,
		DefaultMessage: &goi18n.Message{
			ID:    messageID,
			Other: fallback,
		},
	})
	return msg
}

func applyTemplate(message string, data map[string]any) string {
	if len(data) == 0 {
		return message
	}
	tmpl, err := template.New("msg").Parse(message)
	if err != nil {
		return message
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return message
	}
	return buf.String()
}
