package catalog

// DefaultProducts is the built-in catalog written on first start.
// A fresh slice is returned on every call.
func DefaultProducts() []Product {
	return []Product{
		{
			ID:          1,
			Title:       "Instagram Templates Pack",
			Description: "50+ ready-to-use Canva templates for Instagram. Perfect for growing your social media presence with professional-looking posts, stories, and reels covers.",
			Price:       19,
			Image:       "https://images.unsplash.com/photo-1561070791-2526d30994b5?w=600&h=400&fit=crop",
			Badge:       "Best Seller",
			Status:      StatusActive,
			SalesCount:  68,
			Features: []string{
				"50+ editable Canva templates",
				"Story, Post, and Reel covers",
				"Mobile-friendly design",
				"Step-by-step video tutorial",
				"Lifetime updates",
			},
			License: defaultLicense,
		},
		{
			ID:          2,
			Title:       "Lightroom Presets Bundle",
			Description: "30 professional Lightroom presets for mobile and desktop. Transform your photos with one click. Works with both free and paid versions of Lightroom.",
			Price:       29,
			Image:       "https://images.unsplash.com/photo-1611532736597-de2d4265fba3?w=600&h=400&fit=crop",
			Status:      StatusActive,
			SalesCount:  42,
			Features: []string{
				"30 unique presets",
				"Mobile + Desktop compatible",
				"Works with free Lightroom",
				"Installation guide included",
				"Before/after examples",
			},
			License: defaultLicense,
		},
		{
			ID:          3,
			Title:       "3D Icon Pack",
			Description: "200+ premium 3D icons for web and mobile applications. High-resolution PNG files with transparent backgrounds. Perfect for modern UI designs.",
			Price:       39,
			Image:       "https://images.unsplash.com/photo-1586717791821-3f44a563fa4c?w=600&h=400&fit=crop",
			Badge:       "New",
			Status:      StatusActive,
			SalesCount:  12,
			Features: []string{
				"200+ 3D icons",
				"PNG + SVG formats",
				"Multiple sizes included",
				"Figma file included",
				"Regular updates",
			},
			License: defaultLicense,
		},
		{
			ID:          4,
			Title:       "Social Media Growth Guide",
			Description: "Complete e-book guide to growing from 0 to 10K followers in 90 days. Learn proven strategies, content planning, and engagement tactics.",
			Price:       15,
			Image:       "https://images.unsplash.com/photo-1432888498266-38ffec3eaf0a?w=600&h=400&fit=crop",
			Status:      StatusDraft,
			SalesCount:  20,
			Features: []string{
				"80+ page PDF guide",
				"Content calendar template",
				"Hashtag strategy guide",
				"Growth tracking spreadsheet",
				"Bonus: DM scripts",
			},
			License: defaultLicense,
		},
	}
}
