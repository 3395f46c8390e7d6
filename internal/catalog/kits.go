package catalog

var defaultKits = []Kit{
	{
		ID:        "KIT1",
		Name:      "KIT1 — Mi Mejor Amig@",
		Short:     "Un hermoso detalle para tu querid@ mejor amig@.",
		Price:     1999,
		HeroImage: "https://images.unsplash.com/photo-1519681393784-d120267933ba?q=80&w=1600&auto=format&fit=crop",
		Items: []string{
			"Vela aromática de lavanda",
			"Taza de cerámica artesanal",
			"Galletas gourmet (100 g)",
			"Tarjeta con mensaje personalizado",
		},
		Colors: []string{"Marfil", "Lavanda", "Verde salvia"},
	},
	{
		ID:        "KIT2",
		Name:      "KIT2 — La mejor Pareja",
		Short:     "Demuéstrale a tu pareja cuanto la quieres.",
		Price:     4490,
		HeroImage: "https://images.unsplash.com/photo-1517256064527-09c73fc73e38?q=80&w=1600&auto=format&fit=crop",
		Items: []string{
			"Café especialidad (250 g)",
			"Mug térmico",
			"Tableta de chocolate 70%",
			"Tarjeta con mensaje personalizado",
		},
		Colors: []string{"Carbón", "Cobre", "Azul petróleo"},
	},
	{
		ID:        "KIT3",
		Name:      "KIT3 — Brunch Mini",
		Short:     "Sabores que celebran con sencillez.",
		Price:     4990,
		HeroImage: "https://images.unsplash.com/photo-1504754524776-8f4f37790ca0?q=80&w=1600&auto=format&fit=crop",
		Items: []string{
			"Mermelada artesanal",
			"Granola premium",
			"Miel de flores (120 g)",
			"Tarjeta con mensaje personalizado",
		},
		Colors: []string{"Arena", "Rojo vino", "Azul cielo"},
	},
}

var defaultStore = mustNew(defaultKits)

// Default returns the compiled-in catalog.
func Default() *Store { return defaultStore }

func mustNew(kits []Kit) *Store {
	s, err := New(kits)
	if err != nil {
		panic(err)
	}
	return s
}
