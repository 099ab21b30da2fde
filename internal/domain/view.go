package domain

import "fmt"

// View is one of the five named screens of the site
type View string

const (
	ViewHome        View = "home"
	ViewCollections View = "collections"
	ViewShop        View = "shop"
	ViewStory       View = "story"
	ViewContact     View = "contact"
)

var views = []View{ViewHome, ViewCollections, ViewShop, ViewStory, ViewContact}

// Views returns the screens in navigation order
func Views() []View {
	out := make([]View, len(views))
	copy(out, views)
	return out
}

// ParseView resolves a view name. Any view can be selected from any other.
func ParseView(name string) (View, error) {
	for _, v := range views {
		if string(v) == name {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownView, name)
}

// Label returns the navigation label for the view
func (v View) Label() string {
	switch v {
	case ViewHome:
		return "Home"
	case ViewCollections:
		return "Collections"
	case ViewShop:
		return "Shop"
	case ViewStory:
		return "Story"
	case ViewContact:
		return "Contact"
	}
	return string(v)
}

// Path returns the URL path the view is served on
func (v View) Path() string {
	if v == ViewHome {
		return "/"
	}
	return "/" + string(v)
}
