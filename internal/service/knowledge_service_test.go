package service

import (
	"errors"
	"roleplay_coach_backend/internal/model"
	"roleplay_coach_backend/internal/repository"
	"roleplay_coach_backend/internal/util"
	"testing"
)

func newKnowledgeFixture(t *testing.T) *KnowledgeService {
	t.Helper()
	return NewKnowledgeService(repository.NewKnowledgeRepository(testDB(t)), nil)
}

func TestKnowledgeCreateDefaultsType(t *testing.T) {
	svc := newKnowledgeFixture(t)

	doc := &model.KnowledgeDocument{Title: "Ficha de producto", Content: "El modelo X soporta 500 ciclos"}
	if err := svc.Create(doc); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if doc.DocumentType != "general" {
		t.Fatalf("expected default document type, got %q", doc.DocumentType)
	}
}

func TestKnowledgeSearch(t *testing.T) {
	svc := newKnowledgeFixture(t)

	docs := []model.KnowledgeDocument{
		{Title: "Tarifas 2026", Content: "El precio base es 1200 euros", DocumentType: "pricing"},
		{Title: "Ficha técnica", Content: "500 ciclos de carga", DocumentType: "product"},
		{Title: "Preguntas frecuentes", Content: "El precio incluye soporte", DocumentType: "general"},
	}
	for i := range docs {
		if err := svc.Create(&docs[i]); err != nil {
			t.Fatalf("Create %d: %v", i, err)
		}
	}

	found, err := svc.Search("precio", "")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("expected 2 matches for precio, got %d", len(found))
	}

	found, err = svc.Search("precio", "pricing")
	if err != nil {
		t.Fatalf("Search with type: %v", err)
	}
	if len(found) != 1 || found[0].Title != "Tarifas 2026" {
		t.Fatalf("type filter failed: %+v", found)
	}
}

func TestKnowledgeUpdateAndDelete(t *testing.T) {
	svc := newKnowledgeFixture(t)

	doc := &model.KnowledgeDocument{Title: "Borrador", Content: "contenido", DocumentType: "general"}
	if err := svc.Create(doc); err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := svc.Update(doc.ID, &model.KnowledgeDocument{Title: "Definitivo", Content: "nuevo contenido"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Title != "Definitivo" {
		t.Fatalf("title not updated: %q", updated.Title)
	}
	if updated.DocumentType != "general" {
		t.Fatalf("empty type in update must keep the old one, got %q", updated.DocumentType)
	}

	if err := svc.Delete(doc.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Get(doc.ID); !errors.Is(err, util.ErrDocumentNotFound) {
		t.Fatalf("expected ErrDocumentNotFound, got %v", err)
	}
	if err := svc.Delete(doc.ID); !errors.Is(err, util.ErrDocumentNotFound) {
		t.Fatalf("double delete should report not found, got %v", err)
	}
}
