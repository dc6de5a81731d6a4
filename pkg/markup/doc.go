// Package markup renders ICU messages with tags as HTML.
//
// [Element] builds tag handlers that wrap their children in an element.
// [Format] formats a message, escapes all text (literal and argument text
// alike), and passes the result through a bluemonday policy:
//
//	msg := icu.MustCompile("Read the <link>terms</link>, {name}.")
//	out, err := markup.Format(msg, "en", icu.Values{
//		"name": icu.String(user.Name),
//		"link": markup.Element("a", "href", "/terms"),
//	})
//	// Read the <a href="/terms" rel="nofollow">terms</a>, Ada.
//
// The result is a template.HTML and can be written into html/template
// output without further escaping.
package markup
