package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"

	"github.com/marketkit/marketplace-system/internal/core/domain"
	"github.com/marketkit/marketplace-system/internal/core/ports"
)

type stubProductRepo struct {
	products map[string]*domain.Product
	seq      int
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[string]*domain.Product)}
}

func cloneProduct(p *domain.Product) *domain.Product {
	if p == nil {
		return nil
	}
	clone := *p
	clone.ImageIDs = append([]string(nil), p.ImageIDs...)
	return &clone
}

func (r *stubProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	if p, ok := r.products[id]; ok {
		return cloneProduct(p), nil
	}
	return nil, domain.ErrProductNotFound
}

func (r *stubProductRepo) FindAll(_ context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *cloneProduct(p))
	}
	return out, nil
}

func (r *stubProductRepo) FindByOwnerID(_ context.Context, ownerID string) ([]domain.Product, error) {
	var out []domain.Product
	for _, p := range r.products {
		if p.OwnerID == ownerID {
			out = append(out, *cloneProduct(p))
		}
	}
	return out, nil
}

func (r *stubProductRepo) Save(_ context.Context, product *domain.Product) (*domain.Product, error) {
	saved := cloneProduct(product)
	if saved.ID == "" {
		r.seq++
		saved.ID = fmt.Sprintf("p%d", r.seq)
	}
	r.products[saved.ID] = cloneProduct(saved)
	return saved, nil
}

func (r *stubProductRepo) DeleteByID(_ context.Context, id string) error {
	if _, ok := r.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

var (
	sellerIdentity      = &domain.Identity{SubjectID: "u1", Role: domain.RoleSeller}
	otherSellerIdentity = &domain.Identity{SubjectID: "u2", Role: domain.RoleSeller}
	clientIdentity      = &domain.Identity{SubjectID: "u3", Role: domain.RoleClient}
)

func TestProductService_Create_SellerOnly(t *testing.T) {
	repo := newStubProductRepo()
	svc := NewProductService(repo, zerolog.Nop())

	created, err := svc.Create(context.Background(), sellerIdentity, ports.ProductInput{Name: "Lamp", Price: 25})
	if err != nil {
		t.Fatalf("seller create failed: %v", err)
	}
	if created.OwnerID != "u1" {
		t.Fatalf("owner = %q, want u1", created.OwnerID)
	}

	if _, err := svc.Create(context.Background(), clientIdentity, ports.ProductInput{Name: "Chair"}); err != domain.ErrForbidden {
		t.Fatalf("client create: expected ErrForbidden, got %v", err)
	}
	if _, err := svc.Create(context.Background(), nil, ports.ProductInput{Name: "Desk"}); err != domain.ErrForbidden {
		t.Fatalf("anonymous create: expected ErrForbidden, got %v", err)
	}

	// Denied creates must leave no record behind.
	all, _ := repo.FindAll(context.Background())
	if len(all) != 1 {
		t.Fatalf("expected exactly 1 product, got %d", len(all))
	}
}

func TestProductService_Update_OwnershipEnforced(t *testing.T) {
	repo := newStubProductRepo()
	svc := NewProductService(repo, zerolog.Nop())

	created, err := svc.Create(context.Background(), sellerIdentity, ports.ProductInput{Name: "Lamp", Price: 25})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Another seller cannot update, whatever their role says.
	if _, err := svc.Update(context.Background(), otherSellerIdentity, created.ID, ports.ProductInput{Name: "Hacked"}); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	unchanged, _ := repo.FindByID(context.Background(), created.ID)
	if unchanged.Name != "Lamp" {
		t.Fatalf("denied update mutated the product: %+v", unchanged)
	}

	updated, err := svc.Update(context.Background(), sellerIdentity, created.ID, ports.ProductInput{Name: "Desk Lamp", Price: 30, Quantity: 2})
	if err != nil {
		t.Fatalf("owner update failed: %v", err)
	}
	if updated.Name != "Desk Lamp" || updated.Price != 30 || updated.Quantity != 2 {
		t.Fatalf("unexpected update result: %+v", updated)
	}
}

func TestProductService_Update_NotFound(t *testing.T) {
	svc := NewProductService(newStubProductRepo(), zerolog.Nop())

	if _, err := svc.Update(context.Background(), sellerIdentity, "missing", ports.ProductInput{}); err != domain.ErrProductNotFound {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestProductService_Delete_OwnershipEnforced(t *testing.T) {
	repo := newStubProductRepo()
	svc := NewProductService(repo, zerolog.Nop())

	created, _ := svc.Create(context.Background(), sellerIdentity, ports.ProductInput{Name: "Lamp"})

	if err := svc.Delete(context.Background(), otherSellerIdentity, created.ID); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(context.Background(), clientIdentity, created.ID); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden for client, got %v", err)
	}
	if err := svc.Delete(context.Background(), sellerIdentity, created.ID); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
	if _, err := repo.FindByID(context.Background(), created.ID); err != domain.ErrProductNotFound {
		t.Fatalf("product still present after delete")
	}
}

func TestProductService_ListOwn(t *testing.T) {
	repo := newStubProductRepo()
	svc := NewProductService(repo, zerolog.Nop())

	_, _ = svc.Create(context.Background(), sellerIdentity, ports.ProductInput{Name: "Lamp"})
	_, _ = svc.Create(context.Background(), otherSellerIdentity, ports.ProductInput{Name: "Chair"})

	own, err := svc.ListOwn(context.Background(), sellerIdentity)
	if err != nil {
		t.Fatalf("ListOwn failed: %v", err)
	}
	if len(own) != 1 || own[0].Name != "Lamp" {
		t.Fatalf("unexpected own products: %+v", own)
	}

	if _, err := svc.ListOwn(context.Background(), nil); err != domain.ErrUnauthenticated {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}

func TestProductService_AttachMedia(t *testing.T) {
	repo := newStubProductRepo()
	svc := NewProductService(repo, zerolog.Nop())

	created, _ := svc.Create(context.Background(), sellerIdentity, ports.ProductInput{Name: "Lamp"})

	updated, err := svc.AttachMedia(context.Background(), created.ID, "m1")
	if err != nil {
		t.Fatalf("attach failed: %v", err)
	}
	if len(updated.ImageIDs) != 1 || updated.ImageIDs[0] != "m1" {
		t.Fatalf("unexpected image ids: %v", updated.ImageIDs)
	}

	if _, err := svc.AttachMedia(context.Background(), created.ID, ""); err != domain.ErrMediaIDRequired {
		t.Fatalf("expected ErrMediaIDRequired, got %v", err)
	}
	if _, err := svc.AttachMedia(context.Background(), "missing", "m2"); err != domain.ErrProductNotFound {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}
