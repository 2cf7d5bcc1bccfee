package router

import "testing"

func TestDecide_SearchKeywordDominates(t *testing.T) {
	cases := []string{
		"search for the latest iphone",
		"can you find me a recipe",
		"lookup golang generics",
		"browse cat pictures",
		"what is the best way to search flights", // question words lose to rule 1
	}
	for _, q := range cases {
		d := Decide(q, "")
		if d.Route != RouteSearch {
			t.Fatalf("query %q: want search, got %s", q, d.Route)
		}
	}
}

func TestDecide_SearchKeywordBeatsCategory(t *testing.T) {
	d := Decide("search sports news", "sports")
	if d.Route != RouteSearch {
		t.Fatalf("want search, got %s", d.Route)
	}
}

func TestDecide_QuestionPatterns(t *testing.T) {
	cases := []string{
		"what is inflation",
		"how does a jet engine work",
		"who is the president of france",
		"why should I care about interest rates",
		"explain quantum entanglement",
		"tell me about the roman empire",
		"define opportunity cost",
	}
	for _, q := range cases {
		d := Decide(q, "")
		if d.Route != RouteQA {
			t.Fatalf("query %q: want qa, got %s", q, d.Route)
		}
	}
}

func TestDecide_QuestionWordAloneIsNotEnough(t *testing.T) {
	// "what" without an auxiliary verb and no instruction verb
	d := Decide("what a day", "")
	if d.Route == RouteQA {
		t.Fatalf("question word without auxiliary should not route to qa")
	}
}

func TestDecide_ExplicitCategory(t *testing.T) {
	d := Decide("", "sports")
	if d.Route != RouteNews || d.Category != "sports" {
		t.Fatalf("want news/sports, got %s/%s", d.Route, d.Category)
	}

	// Category casing is normalized
	d = Decide("", "Technology")
	if d.Route != RouteNews || d.Category != "technology" {
		t.Fatalf("want news/technology, got %s/%s", d.Route, d.Category)
	}
}

func TestDecide_InvalidCategoryIgnored(t *testing.T) {
	d := Decide("latest gossip", "celebrities")
	if d.Route != RouteSearch {
		t.Fatalf("invalid category should fall through to search, got %s", d.Route)
	}
}

func TestDecide_CategoryInQuery(t *testing.T) {
	d := Decide("latest technology trends", "")
	if d.Route != RouteNews || d.Category != "technology" {
		t.Fatalf("want news/technology, got %s/%s", d.Route, d.Category)
	}
}

func TestDecide_CategorySubstringMatches(t *testing.T) {
	// Accepted substring behavior: "sports" inside another word still
	// resolves to the sports category.
	d := Decide("that was unsportsmanlike conduct", "")
	if d.Route != RouteNews || d.Category != "sports" {
		t.Fatalf("want news/sports via substring, got %s/%s", d.Route, d.Category)
	}
}

func TestDecide_DefaultIsSearch(t *testing.T) {
	d := Decide("blue bicycle", "")
	if d.Route != RouteSearch {
		t.Fatalf("want default search, got %s", d.Route)
	}
	if d.Category != "" {
		t.Fatalf("default route should not resolve a category")
	}
}
