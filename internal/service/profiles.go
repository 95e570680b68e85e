package service

import "roleplay_coach_backend/internal/model"

// DefaultScenarioKey is the profile used when clients send an unknown
// scenario key. Unknown keys are a silent fallback, not an error.
const DefaultScenarioKey = "sales-cold-call"

// ScenarioProfile is the built-in personality attached to a scenario key.
// Admin-defined behaviors override these when present.
type ScenarioProfile struct {
	Key        string
	Category   model.ScenarioCategory
	Persona    string
	Objections []string
	FollowUps  []string
	Voice      string
}

// roleFramings maps the scenario category to the role the model plays.
// An explicit table instead of key-substring sniffing.
var roleFramings = map[model.ScenarioCategory]string{
	model.CategorySales:        "Eres un cliente potencial en una conversación de ventas. El usuario es el vendedor.",
	model.CategoryRecruitment:  "Eres una entrevistadora de recursos humanos. El usuario es el candidato al puesto.",
	model.CategoryPresentation: "Eres parte de un comité directivo que escucha una presentación. El usuario es el ponente.",
	model.CategoryNegotiation:  "Eres la contraparte en una negociación comercial. El usuario negocia contigo.",
}

// difficultyAdjustments maps the three difficulty levels to behavior
// instructions. Unknown values fall back to intermediate.
var difficultyAdjustments = map[model.Difficulty]string{
	model.DifficultyBeginner:     "Sé paciente y colaborador. Plantea como máximo una objeción sencilla y deja que el usuario se explique.",
	model.DifficultyIntermediate: "Muestra un interés moderado. Plantea objeciones razonables y pide alguna aclaración.",
	model.DifficultyAdvanced:     "Sé exigente y escéptico. Interrumpe con objeciones difíciles, pide datos concretos y no aceptes respuestas vagas.",
}

var scenarioProfiles = map[string]ScenarioProfile{
	"sales-cold-call": {
		Key:      "sales-cold-call",
		Category: model.CategorySales,
		Persona: "Carlos, director de operaciones de una empresa mediana. No esperaba la llamada, " +
			"está ocupado y desconfía de los vendedores telefónicos, pero escucha si le hablan de resultados.",
		Objections: []string{
			"No tengo tiempo para esto ahora",
			"Ya trabajamos con otro proveedor",
			"Envíame la información por correo",
		},
		FollowUps: []string{
			"cuánto cuesta",
			"qué resultados tienen otros clientes",
			"por qué debería cambiar de proveedor",
		},
		Voice: "Daniel",
	},
	"sales-objection-handling": {
		Key:      "sales-objection-handling",
		Category: model.CategorySales,
		Persona: "Lucía, responsable de compras. Conoce el producto y le interesa, pero su presupuesto " +
			"es ajustado y compara cada cifra con la competencia.",
		Objections: []string{
			"Vuestro precio está por encima del mercado",
			"La competencia me ofrece lo mismo más barato",
			"Necesito garantías antes de firmar",
		},
		FollowUps: []string{
			"qué incluye exactamente el precio",
			"qué pasa si no funciona",
			"qué descuento puedes ofrecer",
		},
		Voice: "Lily",
	},
	"recruitment-interview": {
		Key:      "recruitment-interview",
		Category: model.CategoryRecruitment,
		Persona: "Sarah, entrevistadora senior de recursos humanos. Amable pero rigurosa: profundiza en " +
			"cada respuesta y detecta rápidamente las respuestas memorizadas.",
		Objections: []string{
			"Esa respuesta es muy genérica, deme un ejemplo concreto",
			"No veo esa experiencia reflejada en su currículum",
			"¿Por qué dejó su último puesto?",
		},
		FollowUps: []string{
			"hábleme de un logro medible",
			"cómo manejó un conflicto en su equipo",
			"dónde se ve en cinco años",
		},
		Voice: "Sarah",
	},
	"presentation-pitch": {
		Key:      "presentation-pitch",
		Category: model.CategoryPresentation,
		Persona: "Miguel, directivo del comité de inversión. Valora la brevedad, interrumpe con preguntas " +
			"técnicas y pierde el interés ante rodeos.",
		Objections: []string{
			"Vaya al grano, ¿cuál es la cifra?",
			"Eso ya lo hace el mercado, ¿qué os diferencia?",
			"¿Cómo escala este modelo?",
		},
		FollowUps: []string{
			"cuál es el retorno esperado",
			"qué riesgos habéis identificado",
			"cuánta inversión necesitáis",
		},
		Voice: "George",
	},
}

// LookupProfile resolves a scenario key to its profile, silently falling
// back to the default profile for unknown keys.
func LookupProfile(key string) ScenarioProfile {
	if p, ok := scenarioProfiles[key]; ok {
		return p
	}
	return scenarioProfiles[DefaultScenarioKey]
}

// RoleFraming returns the category framing line, defaulting to sales.
func RoleFraming(category model.ScenarioCategory) string {
	if f, ok := roleFramings[category]; ok {
		return f
	}
	return roleFramings[model.CategorySales]
}

// DifficultyAdjustment returns the behavior line for a difficulty level,
// defaulting to intermediate.
func DifficultyAdjustment(d model.Difficulty) string {
	if a, ok := difficultyAdjustments[d]; ok {
		return a
	}
	return difficultyAdjustments[model.DifficultyIntermediate]
}
