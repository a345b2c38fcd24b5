package model

import "testing"

func TestTransicaoValida(t *testing.T) {
	cases := []struct {
		de    string
		para  string
		valid bool
	}{
		{"pendente", "preparo", true},
		{"pendente", "cancelado", true},
		{"pendente", "entrega", false},
		{"pendente", "entregue", false},
		{"preparo", "entrega", true},
		{"preparo", "cancelado", false},
		{"preparo", "pendente", false},
		{"entrega", "entregue", true},
		{"entrega", "preparo", false},
		{"entregue", "pendente", false},
		{"entregue", "entregue", false},
		{"cancelado", "pendente", false},
		{"concluido", "preparo", false},
		{"desconhecido", "preparo", false},
	}

	for _, tt := range cases {
		if got := TransicaoValida(tt.de, tt.para); got != tt.valid {
			t.Fatalf("TransicaoValida(%q, %q)=%v, want %v", tt.de, tt.para, got, tt.valid)
		}
	}
}

func TestStatusFinal(t *testing.T) {
	finais := []string{"entregue", "cancelado", "concluido"}
	for _, s := range finais {
		if !StatusFinal(s) {
			t.Fatalf("StatusFinal(%q)=false, want true", s)
		}
	}
	for _, s := range []string{"pendente", "preparo", "entrega", ""} {
		if StatusFinal(s) {
			t.Fatalf("StatusFinal(%q)=true, want false", s)
		}
	}
}
