package gazetteer

// "Au" is left out on purpose: as a substring it hits almost every text.
var defaultPlaces = []string{
	// City districts
	"Altstadt", "Lehel", "Ludwigsvorstadt", "Isarvorstadt", "Maxvorstadt",
	"Schwabing", "Schwabing-West", "Haidhausen", "Sendling", "Sendling-Westpark",
	"Schwanthalerhöhe", "Westend", "Neuhausen", "Nymphenburg", "Moosach",
	"Milbertshofen", "Am Hart", "Freimann", "Bogenhausen", "Berg am Laim",
	"Trudering", "Riem", "Ramersdorf", "Perlach", "Neuperlach", "Giesing",
	"Obergiesing", "Untergiesing", "Harlaching", "Thalkirchen", "Obersendling",
	"Forstenried", "Fürstenried", "Solln", "Hadern", "Pasing", "Obermenzing",
	"Aubing", "Lochhausen", "Langwied", "Allach", "Untermenzing", "Feldmoching",
	"Hasenbergl", "Laim", "Englschalking", "Denning", "Daglfing", "Zamdorf",
	"Messestadt",
	// Surrounding towns
	"Garching", "Unterföhring", "Ismaning", "Unterhaching", "Oberhaching",
	"Taufkirchen", "Grünwald", "Pullach", "Germering", "Gräfelfing", "Planegg",
	"Ottobrunn", "Neubiberg", "Putzbrunn", "Haar", "Vaterstetten", "Aschheim",
	"Kirchheim", "Feldkirchen", "Unterschleißheim", "Oberschleißheim",
	"Sauerlach", "Brunnthal", "Aying", "Baierbrunn", "Schäftlarn", "Straßlach",
	"Höhenkirchen-Siegertsbrunn", "Hohenbrunn", "Neuried", "Gauting",
	"Karlsfeld", "Dachau", "Starnberg", "Erding", "Freising",
}

var defaultCrimeTypes = map[string][]string{
	"raub":              {"raub", "überfall", "beraubt", "räuber", "entriss"},
	"einbruch":          {"einbruch", "eingebrochen", "einbrecher", "aufgehebelt", "aufgebrochen"},
	"diebstahl":         {"diebstahl", "gestohlen", "entwendet", "dieb"},
	"körperverletzung":  {"körperverletzung", "geschlagen", "verletzt", "faustschlag", "getreten"},
	"betrug":            {"betrug", "betrüger", "falsche polizeibeamte", "schockanruf", "trickbetrug"},
	"brand":             {"brand", "feuer", "feuerwehr", "flammen", "brandstiftung"},
	"unfall":            {"unfall", "zusammenstoß", "kollidierte", "kollision", "erfasst"},
	"unfallflucht":      {"unfallflucht", "entfernte sich", "unerlaubt", "flüchtete"},
	"bedrohung":         {"bedroht", "bedrohung", "messer", "waffe"},
	"sachbeschädigung":  {"sachbeschädigung", "beschädigt", "graffiti", "zerkratzt"},
	"exhibitionist":     {"exhibitionist", "entblößte", "exhibitionistische"},
	"belästigung":       {"belästigt", "belästigung", "sexuell"},
	"festnahme":         {"festgenommen", "festnahme", "vorläufig"},
	"drogen":            {"drogen", "betäubungsmittel", "marihuana", "kokain"},
	"trunkenheitsfahrt": {"alkohol", "promille", "betrunken", "alkoholisiert"},
	"widerstand":        {"widerstand", "beleidigung", "beamte"},
	"vermisst":          {"vermisst", "vermisste", "abgängig"},
	"tötungsdelikt":     {"tötungsdelikt", "getötet", "leblos", "mordkommission"},
}
