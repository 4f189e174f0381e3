package dispatcher

import (
	"fmt"
	"strings"

	"github.com/sandevgo/caliando/internal/core"
)

// All user-facing copy lives here so the handlers stay readable and the
// tone stays consistent across flows.
const (
	replyMenu = "¡Hola! Soy CaliAndo 🤗 tu parcero para descubrir planes en Cali.\n" +
		"Cuéntame qué te gustaría hacer o elige una opción:"

	replyError = "❌ Ocurrió un error procesando tu mensaje. Intenta de nuevo en un momento."

	replyFoodDecline = "🍽️ Por ahora no recomiendo restaurantes ni comida, " +
		"pero puedo contarte de planes culturales, eventos y sitios para visitar en Cali."

	replyInactivityNudge = "🔔 Sigo aquí por si quieres seguir explorando planes en Cali."
	replyFarewell        = "🕒 Parece que no hubo respuesta, así que cierro esta conversación. " +
		"Escríbeme cuando quieras y volvemos a CaliAndo. 👋"

	replySearchingEvents     = "🎶 Buscando eventos en vivo en Cali, dame un momento..."
	replySearchingEventsWhen = "🎶 Buscando eventos %s en Cali, dame un momento..."
	replyNoEventsNearby      = "😕 No encontré eventos en vivo por estos días. Pregúntame por otros planes."
	replyNoEventsFound       = "😕 No encontré eventos para esa fecha. Pregúntame por otros planes."
	replyLiveEventsHeader    = "🎉 Estos son los eventos que encontré:\n\n"
	replyMoreEventsHeader    = "🎉 Más eventos:\n\n"
	replyEventsWhenHeader    = "🎉 Eventos %s:\n\n"

	replyDictionaryWelcome = "📖 ¡Bienvenido al diccionario caleño! " +
		"Escríbeme la palabra o frase que quieras entender.\n" +
		"Escribe *salir* para volver al menú."
	replyMeaning    = "📖 *%s*:\n%s"
	replyNoMeaning  = "😕 No encontré un significado para \"%s\". Prueba con otra palabra."
	replyMoreHint   = "✍️ Escribe *ver más* para seguir leyendo."
	replyNoMorePages = "📖 Eso era todo. Escríbeme otra palabra o *salir* para volver al menú."

	replySaying      = "🗣️ *%s*\n%s\n\nEscribe *otro dicho* para seguir, o *salir* para volver al menú."
	replySayingNudge = "🗣️ Escribe *otro dicho* para escuchar uno más, o *salir* para volver al menú."
	replyNoSayings   = "😕 Todavía no tengo dichos guardados."

	replyResultsHeader     = "✨ Esto fue lo que encontré:\n\n"
	replyMoreResultsHeader = "✨ Más opciones:\n\n"
	replyResultsFooter     = "\nRespóndeme con el número o el nombre para ver los detalles, " +
		"o escribe *ver más* para seguir viendo opciones."
	replyNothingFound = "😕 No encontré planes que coincidan. ¿Me lo cuentas con otras palabras?"

	replyNoActiveSearch = "🔎 Aún no tenemos una búsqueda activa. Cuéntame qué plan buscas."
	replyNoMoreResults  = "📋 No hay más resultados. Respóndeme con un número o nombre, o haz otra búsqueda."

	replyNoComparablePrices = "💸 Los resultados actuales no tienen precios comparables. " +
		"Los precios solo están disponibles para los planes de Civitatis."
	replyCheaperHeader = "💸 Del más barato al más caro:\n"
	replyPricierHeader = "💸 Del más caro al más barato:\n"

	replyNoDetail = "😕 No encontré los detalles de \"%s\". Prueba con otra opción."
)

func menuButtons() []core.ButtonOption {
	return []core.ButtonOption{
		{ID: buttonLiveEvents, Label: "Ver eventos 🎶"},
		{ID: buttonDictionary, Label: "Diccionario 📖"},
		{ID: buttonSaying, Label: "Un dicho 🗣️"},
	}
}

func formatCandidates(header string, items []core.Candidate) string {
	var b strings.Builder
	b.WriteString(header)
	for i, c := range items {
		fmt.Fprintf(&b, "%d. *%s*\n", i+1, c.Name)
		if c.Description != "" {
			fmt.Fprintf(&b, "   %s\n", trimEllipsis(c.Description, 120))
		}
	}
	b.WriteString(replyResultsFooter)
	return b.String()
}

func formatEvents(header string, events []core.LiveEvent) string {
	var b strings.Builder
	b.WriteString(header)
	for _, ev := range events {
		fmt.Fprintf(&b, "🎤 *%s*\n", ev.Title)
		if ev.Date != "" {
			fmt.Fprintf(&b, "📅 %s\n", ev.Date)
		}
		if ev.Venue != "" {
			fmt.Fprintf(&b, "📍 %s\n", ev.Venue)
		}
		if ev.Link != "" {
			fmt.Fprintf(&b, "🔗 %s\n", ev.Link)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// formatDetail renders a catalog record field by field, skipping what
// the source table does not carry.
func formatDetail(d *core.Detail) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📌 *%s*\n", d.Name)
	if d.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", d.Description)
	}
	if d.Location != "" {
		fmt.Fprintf(&b, "\n📍 Ubicación: %s\n", d.Location)
	}
	if d.Category != "" {
		fmt.Fprintf(&b, "🏷️ Tipo de lugar: %s\n", d.Category)
	}
	if d.SocialLinks != "" {
		fmt.Fprintf(&b, "📱 Redes sociales: %s\n", d.SocialLinks)
	}
	if d.Website != "" {
		fmt.Fprintf(&b, "🌐 Página web: %s\n", d.Website)
	}
	if d.Zone != "" {
		fmt.Fprintf(&b, "🗺️ Zona: %s\n", d.Zone)
	}
	if d.AccessPolicy != "" {
		fmt.Fprintf(&b, "🎟️ Ingreso permitido: %s\n", d.AccessPolicy)
	}
	if d.Price != "" {
		fmt.Fprintf(&b, "💰 Precio: %s\n", d.Price)
	}
	if d.Link != "" {
		fmt.Fprintf(&b, "🔗 %s\n", d.Link)
	}
	return strings.TrimRight(b.String(), "\n")
}

// chunkText splits s into rune-safe chunks of at most size runes.
// Always returns at least one chunk.
func chunkText(s string, size int) []string {
	runes := []rune(s)
	if len(runes) <= size {
		return []string{s}
	}
	var pages []string
	for start := 0; start < len(runes); start += size {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		pages = append(pages, string(runes[start:end]))
	}
	return pages
}

func trimEllipsis(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "…"
}
