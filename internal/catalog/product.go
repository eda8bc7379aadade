package catalog

type Status string

const (
	StatusActive Status = "active"
	StatusDraft  Status = "draft"
)

const (
	defaultTitle   = "New Product"
	defaultImage   = "https://images.unsplash.com/photo-1560472354-b33ff0c44a43?w=600&h=400&fit=crop"
	defaultLicense = "Personal License"
)

// Product is one sellable catalog item. Field names match the persisted slot layout.
type Product struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Image       string   `json:"image"`
	Badge       string   `json:"badge"`
	Status      Status   `json:"status"`
	SalesCount  int64    `json:"salesCount"`
	Features    []string `json:"features"`
	License     string   `json:"license"`
}

func (p Product) Active() bool { return p.Status == StatusActive }

// NewProduct carries operator input for Create. Zero values fall back to defaults.
type NewProduct struct {
	Title       string
	Description string
	Price       float64
	Image       string
	Badge       string
	Status      Status
	Features    []string
	License     string
}

// ProductUpdate is a partial merge: nil fields are left untouched.
// SalesCount only changes through Store.RecordSale.
type ProductUpdate struct {
	Title       *string
	Description *string
	Price       *float64
	Image       *string
	Badge       *string
	Status      *Status
	Features    *[]string
	License     *string
}

func (u ProductUpdate) apply(p Product) Product {
	if u.Title != nil {
		p.Title = *u.Title
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.Price != nil {
		p.Price = CoercePrice(*u.Price)
	}
	if u.Image != nil {
		p.Image = *u.Image
	}
	if u.Badge != nil {
		p.Badge = *u.Badge
	}
	if u.Status != nil {
		p.Status = *u.Status
	}
	if u.Features != nil {
		p.Features = append([]string{}, (*u.Features)...)
	}
	if u.License != nil {
		p.License = *u.License
	}
	return p
}

type Stats struct {
	TotalSalesCount int64   `json:"totalSalesCount"`
	TotalRevenue    float64 `json:"totalRevenue"`
}

func (np NewProduct) build(id int64) Product {
	p := Product{
		ID:          id,
		Title:       np.Title,
		Description: np.Description,
		Price:       CoercePrice(np.Price),
		Image:       np.Image,
		Badge:       np.Badge,
		Status:      np.Status,
		Features:    append([]string{}, np.Features...),
		License:     np.License,
	}
	if p.Title == "" {
		p.Title = defaultTitle
	}
	if p.Image == "" {
		p.Image = defaultImage
	}
	if p.Status == "" {
		p.Status = StatusDraft
	}
	if p.License == "" {
		p.License = defaultLicense
	}
	return p
}
