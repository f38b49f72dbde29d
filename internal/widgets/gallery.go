package widgets

import (
	"context"
	"fmt"

	"github.com/wagiedev/mcp-apps-go/internal/registry"
	"github.com/wagiedev/mcp-apps-go/internal/schema"
	"github.com/wagiedev/mcp-apps-go/internal/widget"
)

var galleryWidget = &widget.Widget{
	Identifier: "show_gallery",
	Title:      "Show Gallery",
	Description: `Display an image gallery with grid layout and lightbox viewer.

Use this tool when:
- The user wants to see photos or images
- Displaying visual portfolios, albums, or collections
- Images are the primary content (not just thumbnails)

Args:
    title: Gallery header text (default: "Photo Gallery")
    category: Category of images to display (default: "nature")

Returns:
    Image grid with lightbox functionality containing:
    - Thumbnail grid view
    - Full-size lightbox on click
    - Image title and description
    - Author attribution

Example:
    show_gallery(title="Nature Photography", category="nature")`,
	TemplateURI: "ui://widget/gallery.html",
	Invoking:    "Loading gallery...",
	Invoked:     "Gallery ready",
	Component:   "gallery",
}

type galleryInput struct {
	Title    string `json:"title"`
	Category string `json:"category"`
}

type galleryImage struct {
	ID          string `json:"id"`
	Src         string `json:"src"`
	Thumbnail   string `json:"thumbnail"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Author      string `json:"author"`
}

type galleryContent struct {
	Title  string         `json:"title"`
	Images []galleryImage `json:"images"`
}

func unsplash(photo string) galleryImage {
	base := "https://images.unsplash.com/" + photo

	return galleryImage{
		Src:       base + "?w=800&h=600&fit=crop",
		Thumbnail: base + "?w=400&h=300&fit=crop",
	}
}

var sampleGalleryImages = func() []galleryImage {
	photos := []struct {
		photo, title, description, author string
	}{
		{"photo-1506905925346-21bda4d32df4", "Mountain Sunrise", "Alps at dawn", "John Doe"},
		{"photo-1469474968028-56623f02e42e", "Forest Path", "Sunlit forest", "Jane Smith"},
		{"photo-1507525428034-b723cf961d3e", "Tropical Beach", "Crystal waters", "Mike Johnson"},
		{"photo-1519681393784-d120267933ba", "Starry Night", "Milky Way", "Sarah Wilson"},
		{"photo-1518837695005-2083093ee35b", "Ocean Waves", "Crashing waves", "Tom Brown"},
		{"photo-1441974231531-c6227db76b6e", "Misty Forest", "Morning fog", "Emily Davis"},
	}

	images := make([]galleryImage, len(photos))
	for i, p := range photos {
		img := unsplash(p.photo)
		img.ID = fmt.Sprint(i + 1)
		img.Title = p.title
		img.Description = p.description
		img.Author = p.author
		images[i] = img
	}

	return images
}()

func newGallery(deps Deps) (*registry.Entry, error) {
	model, err := schema.NewModel("GalleryInput",
		schema.Field{Name: "title", Type: schema.TypeString, Default: "Photo Gallery", Description: "Gallery title"},
		schema.Field{
			Name:        "category",
			Type:        schema.TypeString,
			Default:     "nature",
			Description: "Category of images. Options: nature, architecture, portraits, travel",
			Enum:        []string{"nature", "architecture", "portraits", "travel"},
		},
	)
	if err != nil {
		return nil, err
	}

	return define(deps, galleryWidget, model, func(_ context.Context, in galleryInput) (*output, error) {
		return &output{
			Narration: fmt.Sprintf("Gallery: %s (%d photos)", in.Title, len(sampleGalleryImages)),
			Data:      galleryContent{Title: in.Title, Images: sampleGalleryImages},
		}, nil
	}), nil
}
