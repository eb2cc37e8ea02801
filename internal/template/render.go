package template

import (
  "strings"
  "github.com/interface8/Prompt-8/internal/types"
)

// Render substitutes every {{name}} token in tmpl for each defined parameter.
// A parameter with no supplied (or empty) value renders as [name] so the
// preview shows which fields are still unfilled. Tokens without a matching
// parameter definition are left untouched; parameters the template never
// references are ignored. Render never fails and never mutates its inputs.
func Render(tmpl string, params []types.Parameter, values map[string]string) string {
  out := tmpl
  for _, param := range params {
    value := values[param.Name]
    if value == "" {
      value = "[" + param.Name + "]"
    }
    out = strings.ReplaceAll(out, "{{"+param.Name+"}}", value)
  }
  return out
}
