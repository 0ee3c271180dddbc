package templates

import (
	"embed"
	"html/template"
	"strings"
)

//go:embed *.html
var htmlFiles embed.FS

var Home,
	Result,
	Favorites,
	History,
	Pantry,
	Login,
	Signup *template.Template

func Init() error {
	funcs := template.FuncMap{
		"join": func(items []string) string { return strings.Join(items, ", ") },
		"add":  func(a, b int) int { return a + b },
	}
	tmpls, err := template.New("all").Funcs(funcs).ParseFS(htmlFiles, "*.html")
	if err != nil {
		return err
	}
	Home = ensure(tmpls, "home.html")
	Result = ensure(tmpls, "result.html")
	Favorites = ensure(tmpls, "favorites.html")
	History = ensure(tmpls, "history.html")
	Pantry = ensure(tmpls, "pantry.html")
	Login = ensure(tmpls, "login.html")
	Signup = ensure(tmpls, "signup.html")
	return nil
}

func ensure(templates *template.Template, name string) *template.Template {
	tmpl := templates.Lookup(name)
	if tmpl == nil {
		panic("template " + name + " not found")
	}
	return tmpl
}
