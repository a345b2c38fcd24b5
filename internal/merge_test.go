package internal

import (
	"reflect"
	"testing"
	"time"

	"github.com/brpedidos/pedidos/internal/model"
)

func docComData(id, status, data string) model.RawDoc {
	return model.RawDoc{ID: id, Data: map[string]interface{}{
		"status":      status,
		"dataCriacao": data,
	}}
}

func TestMergeDeterministico(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	a := []model.RawDoc{
		docComData("p1", "pendente", "2024-05-10T10:00:00Z"),
		docComData("p2", "preparo", "2024-05-10T09:00:00Z"),
	}
	b := []model.RawDoc{
		docComData("p3", "entrega", "2024-05-10T11:00:00Z"),
	}

	primeiro := MergeSnapshots(a, b, now)
	segundo := MergeSnapshots(a, b, now)

	if !reflect.DeepEqual(primeiro, segundo) {
		t.Fatal("merges repetidos com as mesmas entradas divergiram")
	}
}

func TestMergeBSobrescreveA(t *testing.T) {
	now := time.Now()
	a := []model.RawDoc{docComData("p1", "pendente", "2024-05-10T10:00:00Z")}
	b := []model.RawDoc{docComData("p1", "preparo", "2024-05-10T10:00:00Z")}

	merged := MergeSnapshots(a, b, now)

	if len(merged) != 1 {
		t.Fatalf("len = %d, want 1", len(merged))
	}
	if merged[0].Status != "preparo" {
		t.Fatalf("status = %q, want preparo (cópia de B)", merged[0].Status)
	}
}

func TestMergeOrdemDecrescente(t *testing.T) {
	now := time.Now()
	a := []model.RawDoc{
		docComData("antigo", "pendente", "2024-05-09T10:00:00Z"),
		docComData("recente", "pendente", "2024-05-10T11:00:00Z"),
	}
	b := []model.RawDoc{
		docComData("meio", "pendente", "2024-05-10T08:00:00Z"),
		docComData("sem-data", "pendente", "data inválida"),
	}

	merged := MergeSnapshots(a, b, now)

	ids := make([]string, 0, len(merged))
	for _, p := range merged {
		ids = append(ids, p.ID)
	}
	want := []string{"recente", "meio", "antigo", "sem-data"}
	if !reflect.DeepEqual(ids, want) {
		t.Fatalf("ordem = %v, want %v", ids, want)
	}
}

func TestMergeVazio(t *testing.T) {
	merged := MergeSnapshots(nil, nil, time.Now())
	if len(merged) != 0 {
		t.Fatalf("len = %d, want 0", len(merged))
	}
}
