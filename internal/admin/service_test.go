package admin_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Storefront/internal/admin"
	"Storefront/internal/catalog"
	"Storefront/internal/kv"
)

const img = "data:image/png;base64,AAAA"

func fixedClock(ms int64) func() time.Time {
	return func() time.Time { return time.UnixMilli(ms) }
}

func TestAddProduct_Validation(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name  string
		in    admin.NewProduct
		field string
	}{
		{"missing image", admin.NewProduct{Name: "Mug", Price: "15", Description: "desc"}, "image"},
		{"empty name", admin.NewProduct{Name: "", Price: "5", Description: "desc", Image: img}, "name"},
		{"blank name", admin.NewProduct{Name: "   ", Price: "5", Description: "desc", Image: img}, "name"},
		{"price not a number", admin.NewProduct{Name: "Mug", Price: "abc", Description: "desc", Image: img}, "price"},
		{"price empty", admin.NewProduct{Name: "Mug", Price: "", Description: "desc", Image: img}, "price"},
		{"price negative", admin.NewProduct{Name: "Mug", Price: "-1", Description: "desc", Image: img}, "price"},
		{"price NaN", admin.NewProduct{Name: "Mug", Price: "NaN", Description: "desc", Image: img}, "price"},
		{"price Inf", admin.NewProduct{Name: "Mug", Price: "+Inf", Description: "desc", Image: img}, "price"},
		{"empty description", admin.NewProduct{Name: "Mug", Price: "5", Description: " ", Image: img}, "description"},
		{"upload not an image", admin.NewProduct{Name: "Mug", Price: "5", Description: "desc", ImageData: []byte("hello")}, "image"},
		{"empty upload", admin.NewProduct{Name: "Mug", Price: "5", Description: "desc", ImageData: []byte{}}, "image"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := kv.NewMemStore()
			require.NoError(t, catalog.SaveCustomProducts(ctx, store, []catalog.Product{{ID: 5, Name: "Cap"}}))
			s := admin.NewService(store, nil)

			_, err := s.AddProduct(ctx, tc.in)
			require.ErrorIs(t, err, admin.ErrValidation)

			var verr *admin.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)

			ps := s.CustomProducts(ctx)
			require.Len(t, ps, 1, "collection unchanged")
			assert.Equal(t, int64(5), ps[0].ID)
		})
	}
}

func TestAddProduct_AppendsWithFreshID(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemStore()
	s := admin.NewService(store, nil).WithClock(fixedClock(1_700_000_000_000))

	p, err := s.AddProduct(ctx, admin.NewProduct{
		Name:        " Mug ",
		Price:       "15",
		Description: "desc",
		Variants:    "Red, Blue,,",
		Image:       img,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1_700_000_000_000), p.ID)
	assert.Equal(t, "Mug", p.Name)
	assert.Equal(t, 15.0, p.Price)
	assert.Equal(t, []string{"Red", "Blue"}, p.Variants)

	ps := s.CustomProducts(ctx)
	require.Len(t, ps, 1)
	assert.Equal(t, p, ps[0])

	l := catalog.NewLoader(staticSource{{ID: 1, Name: "Pen", Price: 10}}, store, nil)
	require.NoError(t, l.Load(ctx))
	merged := l.Products()
	require.Len(t, merged, 2)
	assert.Equal(t, int64(1), merged[0].ID)
	assert.Equal(t, p.ID, merged[1].ID, "custom product merged after defaults")
}

func TestAddProduct_IDsStayUniqueWithinSession(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemStore()
	require.NoError(t, catalog.SaveCustomProducts(ctx, store, []catalog.Product{{ID: 5_000, Name: "Old"}}))
	s := admin.NewService(store, nil).WithClock(fixedClock(1_000))

	in := admin.NewProduct{Name: "Mug", Price: "1", Description: "d", Image: img}

	a, err := s.AddProduct(ctx, in)
	require.NoError(t, err)
	b, err := s.AddProduct(ctx, in)
	require.NoError(t, err)

	assert.Equal(t, int64(5_001), a.ID)
	assert.Equal(t, int64(5_002), b.ID)

	_, err = s.DeleteProduct(ctx, b.ID)
	require.NoError(t, err)
	c, err := s.AddProduct(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, int64(5_003), c.ID, "deleted ids are not reissued")
}

func TestAddProduct_UploadedImage(t *testing.T) {
	ctx := context.Background()
	s := admin.NewService(kv.NewMemStore(), nil)

	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	p, err := s.AddProduct(ctx, admin.NewProduct{
		Name: "Mug", Price: "5", Description: "desc",
		Image: "ignored.jpg", ImageType: "application/octet-stream", ImageData: png,
	})
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,iVBORw0KGgoAAAANSUhEUg==", p.Image)
}

func TestAddProduct_NoVariants(t *testing.T) {
	ctx := context.Background()
	s := admin.NewService(kv.NewMemStore(), nil)

	p, err := s.AddProduct(ctx, admin.NewProduct{Name: "Mug", Price: "0", Description: "free", Image: img})
	require.NoError(t, err)
	assert.Nil(t, p.Variants)
	assert.Zero(t, p.Price)
}

func TestAddProduct_MalformedCollectionIsReplaced(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemStore()
	require.NoError(t, store.Put(ctx, kv.KeyCustomProducts, []byte(`garbage`)))
	s := admin.NewService(store, nil)

	_, err := s.AddProduct(ctx, admin.NewProduct{Name: "Mug", Price: "2", Description: "d", Image: img})
	require.NoError(t, err)
	assert.Len(t, s.CustomProducts(ctx), 1)
}

func TestDeleteProduct(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemStore()
	require.NoError(t, catalog.SaveCustomProducts(ctx, store, []catalog.Product{
		{ID: 100, Name: "A"},
		{ID: 200, Name: "B"},
	}))
	s := admin.NewService(store, nil)

	before, _, err := store.Get(ctx, kv.KeyCustomProducts)
	require.NoError(t, err)

	ok, err := s.DeleteProduct(ctx, 999)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = s.DeleteProduct(ctx, 1)
	require.NoError(t, err)
	assert.False(t, ok, "default product ids are never stored here")

	after, _, err := store.Get(ctx, kv.KeyCustomProducts)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	ok, err = s.DeleteProduct(ctx, 100)
	require.NoError(t, err)
	assert.True(t, ok)

	ps := s.CustomProducts(ctx)
	require.Len(t, ps, 1)
	assert.Equal(t, int64(200), ps[0].ID)
}

func TestGate(t *testing.T) {
	g := admin.NewGate("confirm")

	assert.NoError(t, g.Confirm("confirm"))
	assert.ErrorIs(t, g.Confirm("Confirm"), admin.ErrGateRejected)
	assert.ErrorIs(t, g.Confirm(" confirm"), admin.ErrGateRejected)
	assert.ErrorIs(t, g.Confirm(""), admin.ErrGateRejected)

	assert.NoError(t, admin.NewGate("").Confirm("anything"))
}

func TestParseVariants(t *testing.T) {
	assert.Nil(t, admin.ParseVariants(""))
	assert.Nil(t, admin.ParseVariants(" , ,"))
	assert.Equal(t, []string{"S", "M", "L"}, admin.ParseVariants("S, M ,L"))
}

func TestImageDataURL(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

	u, err := admin.ImageDataURL("", png)
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,iVBORw0KGgoAAAANSUhEUg==", u)

	u, err = admin.ImageDataURL("image/jpeg", []byte{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, "data:image/jpeg;base64,AQID", u)

	_, err = admin.ImageDataURL("", nil)
	assert.ErrorIs(t, err, admin.ErrValidation)

	_, err = admin.ImageDataURL("text/plain", []byte("hello"))
	assert.ErrorIs(t, err, admin.ErrValidation)
}

type staticSource []catalog.Product

func (s staticSource) Fetch(context.Context) ([]catalog.Product, error) { return s, nil }

func (s staticSource) String() string { return "static" }
