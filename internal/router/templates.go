package router

import (
	"fmt"
	"html/template"
	"path/filepath"

	"inkwell/internal/utils"

	"github.com/gin-contrib/multitemplate"
)

// pages maps the names handlers render to files under views/.
var pages = []string{
	"auth/login.html",
	"auth/register.html",
	"post/index.html",
	"post/show.html",
	"post/form.html",
	"page/about.html",
	"page/contact.html",
	"page/thanks.html",
	"error.html",
}

// LoadTemplates pairs every view with the shared layouts and includes.
func LoadTemplates(templatesDir string) multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	layouts, err := filepath.Glob(templatesDir + "/layouts/*.html")
	if err != nil {
		panic(err)
	}

	includes, err := filepath.Glob(templatesDir + "/includes/*.html")
	if err != nil {
		panic(err)
	}

	assemble := func(view string) []string {
		files := make([]string, 0, len(layouts)+len(includes)+1)
		files = append(files, layouts...)
		files = append(files, includes...)
		files = append(files, view)
		return files
	}

	for _, name := range pages {
		r.AddFromFilesFuncs(name, funcMap, assemble(filepath.Join(templatesDir, "views", name))...)
	}

	return r
}

var funcMap = template.FuncMap{
	"gravatar": utils.GravatarURL,
	"dict": func(values ...interface{}) (map[string]interface{}, error) {
		if len(values)%2 != 0 {
			return nil, fmt.Errorf("invalid dict call")
		}
		dict := make(map[string]interface{}, len(values)/2)
		for i := 0; i < len(values); i += 2 {
			key, ok := values[i].(string)
			if !ok {
				return nil, fmt.Errorf("dict keys must be strings")
			}
			dict[key] = values[i+1]
		}
		return dict, nil
	},
}
