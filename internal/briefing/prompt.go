package briefing

import (
	"fmt"
	"strings"
	"time"
)

// Greek day and date formatting without a locale dependency; the
// briefing's editorial voice is Greek throughout.
var greekDays = map[time.Weekday]string{
	time.Sunday:    "Κυριακή",
	time.Monday:    "Δευτέρα",
	time.Tuesday:   "Τρίτη",
	time.Wednesday: "Τετάρτη",
	time.Thursday:  "Πέμπτη",
	time.Friday:    "Παρασκευή",
	time.Saturday:  "Σάββατο",
}

const storyCount = "3 έως 5"

// BuildPrompt renders the editorial prompt for one briefing. The
// model must use the searchWeb tool and answer with a single JSON
// object matching models.BriefingContent.
func BuildPrompt(date time.Time, country, category string) string {
	dayOfWeek := greekDays[date.Weekday()]
	formattedDate := date.Format("02/01/2006")

	var selectionCriteria, searchTarget string
	if category != "" {
		searchTarget = fmt.Sprintf("την κατηγορία %q", category)
		selectionCriteria = fmt.Sprintf("Επίλεξε τις %s σημαντικότερες και πιο ενδιαφέρουσες ειδήσεις από την κατηγορία %s.", storyCount, category)
	} else {
		searchTarget = "τον κόσμο"
		if country == "Ελλάδα" {
			searchTarget = "την Ελλάδα"
		}
		selectionCriteria = fmt.Sprintf(`Επίλεξε %s από τις πιο σημαντικές ειδήσεις για %s. Η επιλογή σου πρέπει να εστιάζει αποκλειστικά στους εξής τομείς:
- "Politics" (Πολιτική): τα πολιτικά θέματα που απασχολούν περισσότερο την κοινή γνώμη αυτή τη στιγμή.
- "Economy" (Οικονομία): οι κυριότερες οικονομικές εξελίξεις.
- "Foreign Policy" (Εξωτερική Πολιτική): οι διεθνείς σχέσεις και η εξωτερική πολιτική της Ελλάδας.`, storyCount, searchTarget)
	}

	var b strings.Builder
	fmt.Fprintf(&b, `Λειτούργησε ως ένας διορατικός αναλυτής ειδήσεων και αρχισυντάκτης για το THE QBIT. Η φωνή σου είναι αυτή ενός ειδικού σχολιαστή που συνδέει διαφορετικά γεγονότα και εξηγεί τις βαθύτερες επιπτώσεις.
Ο στόχος σου είναι να εντοπίσεις τις %s ειδήσεις με το μεγαλύτερο ενδιαφέρον και αντίκτυπο για το κοινό σήμερα (%s) σχετικά με %s.

Βασικές Οδηγίες:
1. Χρήση Εργαλείου: Πρέπει οπωσδήποτε να χρησιμοποιήσεις το εργαλείο 'searchWeb' για να βρεις τα άρθρα. Βάσισε ολόκληρη την απάντησή σου αποκλειστικά στα αποτελέσματα της αναζήτησης.
2. Επιλογή Ειδήσεων: %s
3. Σε Βάθος Ανάλυση: Για κάθε είδηση, γράψε μια αναλυτική ανάλυση 3-5 παραγράφων. Εξήγησε το γιατί, το πώς, και τις πιθανές συνέπειες.
4. Annotations: Για κάθε είδηση, εντόπισε τουλάχιστον 10 σημαντικούς όρους-κλειδιά. Η 'explanation' πρέπει να είναι μια πλήρης παράγραφος με ιστορικό υπόβαθρο ή επεξήγηση.
5. Διαχείριση Σφαλμάτων: Αν η αναζήτηση δεν επιστρέψει σχετικά αποτελέσματα, ΠΡΕΠΕΙ να επιστρέψεις ένα έγκυρο αντικείμενο JSON με κενό πίνακα 'stories' και ένα 'dailySummary' που εξηγεί ότι δεν βρέθηκαν ειδήσεις.

Δομή Απάντησης JSON:
Η τελική σου απάντηση πρέπει να είναι ένα αντικείμενο JSON με τα εξής κλειδιά: 'greeting', 'intro', 'dailySummary', 'stories', 'outro'.
1. 'greeting': "Καλησπέρα"
2. 'intro': "Ψάξαμε παντού. Βρήκαμε αυτό που έχει σημασία."
3. 'dailySummary': Μια παράγραφος που ξεκινά με την ημέρα, την ημερομηνία και μια σταθερή ώρα (π.χ. 06:00), και συνοψίζει τις επικεφαλίδες.
4. 'stories': Ένας πίνακας με %s αντικείμενα ειδήσεων, το καθένα με 'category', 'title', 'summary', 'importance' (1-3) και 'annotations' (πίνακας αντικειμένων με 'term', 'importance' 1-3, 'explanation').
5. 'outro': Μια σύντομη, στοχαστική πρόταση κλεισίματος. Παράδειγμα: "Και κάπως έτσι ξεκίνησε άλλη μια %s."

Η τελική έξοδος πρέπει να είναι ένα ενιαίο, minified αντικείμενο JSON.`,
		storyCount, formattedDate, searchTarget, selectionCriteria, storyCount, dayOfWeek)
	return b.String()
}

// WeatherPrompt asks for a strict line-based format; JSON answers from
// grounded tools proved unreliable in practice.
const WeatherPrompt = `Based on the provided location, return the current local time and a brief weather report.
Format the response exactly as follows, with each item on a new line:
Time: [the time in HH:MM format]
Temperature: [the temperature in °C]
Description: [a brief weather description]
Icon: [a single emoji for the weather]

Do not include any other text, explanations, or formatting.`
