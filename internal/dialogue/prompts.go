package dialogue

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/courseadvisor/internal/domain"
)

const (
	promptGreeting         = "Hey, This is your course advisor, My name is Brian. Should we start planning?"
	promptGreetingRetry    = "I don't understand. Are you ready to start planning?"
	promptLetsGo           = "ok! Let's go!"
	promptLetsGoAgain      = "Alright, Let's go!"
	promptLater            = "Ok. let me know if you want to"
	promptLookAtSchedule   = "Okay, let's look at your schedule."
	promptChatLater        = "If now isn't a good time, we can always chat later."
	promptGuidedWelcome    = "Welcome. To help you plan, you can use the filters on the left side of the screen, or should I help you filter the course?"
	promptGuidedHelp       = "Nice! Let me help you filter the courses."
	promptGuidedSelf       = "Ok, First, you can select a specific period and credit to your course"
	promptGuidedTrack      = "Select your track at the bottom of the filter, and tell me when you have selected your programme."
	promptGuidedDone       = "Great! Now you should see the relevant courses."
	promptGuidedFoundAdd   = "Ah, you found a course already!"
	promptGuidedRetry      = "I didn't quite get that. Just let me know when you are 'done' selecting filters."
	promptGuidedStillThere = "Are you still there? Please tell me when you have selected the filter."

	promptAskPeriod        = "Which period? 1, 2, 3, or 4?"
	promptAllPeriods       = "All periods."
	promptPeriodRetry      = "Please say a number between 1 and 4."
	promptAskCredits       = "How many credits? 7.5 or 6.0?"
	promptAnyCredits       = "Any credits."
	promptCreditsRetry     = "Please say 7.5, 6.0 or any."
	promptAskProgramme     = "Which programme track? Like Interactive Media Technology?"
	promptAllProgrammes    = "Showing all programmes."
	promptProgrammeRetry   = "Please tell me the programme name again."
	promptWhichCourse      = "Which course?"
	promptWhichRemove      = "Which course to remove?"
	promptWhichPeriodClear = "Which period should I clear?"
	promptClearedAll       = "I've cleared your entire schedule."
	promptAlreadyEmpty     = "Your schedule is already empty."
	promptUndone           = "Undone. I've reverted the last change."
	promptNothingToUndo    = "There is nothing to undo."
	promptEmptySchedule    = "Your schedule is empty."
	promptNotCaught        = "Sorry, I didn't catch that."
	promptSaved            = "Alright, your schedule is saved. Good luck with your studies! Byebye!"

	promptAdded            = "Okay, added."
	promptAddCancelled     = "Okay, cancelled."
	promptStopHere         = "Okay, let's stop here. Byebye!"
	promptTakeAsNo         = "I'll take that as a no."
	promptOverloadAdded    = "Okay, I have added it to your schedule."
	promptOverloadDeclined = "Wise choice. Let's find something else."
	promptRemoved          = "Okay, removed."
	promptKept             = "Okay, keeping it."
	promptStop             = "Okay, let's stop. Byebye!"
	promptRemoveCancelled  = "Cancelled."
)

// Failure reasons written to the dialogue log.
const (
	reasonUnrecognized = "Unrecognized Intent"
	reasonNoResponse   = "No Response"
)

var emptyCartOpeners = []string{
	"Tell me which course code or name you want to add.",
	"Which course should we add to your plan first?",
	"I'm ready. Please give me a course name or code.",
}

var filledCartOpeners = []string{
	"You have %d courses so far. What's next?",
	"That makes %d courses in your plan. Do you want to add another?",
	"We have %d items in the list. What course do you want to add another?",
}

func planningOpener(count int, pick func(n int) int) string {
	if count == 0 {
		return emptyCartOpeners[pick(len(emptyCartOpeners))]
	}
	return fmt.Sprintf(filledCartOpeners[pick(len(filledCartOpeners))], count)
}

func confirmAddPrompt(sc domain.ScheduledCourse) string {
	return fmt.Sprintf("I found %s. It is %s credits and runs in %s. Do you want to add it?",
		sc.Name, domain.FormatCredits(sc.Credits), sc.Period)
}

func overloadPrompt(threshold, projected float64, p domain.Period) string {
	return fmt.Sprintf("Wait, adding this course will exceed %s credits in %s. Your total would be %s credits. That is a heavy workload. Are you sure you want to add it?",
		strconv.FormatFloat(threshold, 'f', -1, 64), p, domain.FormatCredits(projected))
}

func confirmRemovePrompt(sc domain.ScheduledCourse) string {
	return fmt.Sprintf("Are you sure you want to remove %s?", sc.Name)
}

func cartListing(codes []string) string {
	if len(codes) == 0 {
		return promptEmptySchedule
	}
	return fmt.Sprintf("You have: %s.", strings.Join(codes, ", "))
}
