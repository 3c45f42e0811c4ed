package chat

// Picker menus open above or below their trigger depending on the space
// left in the scroll viewport.
const (
	pickerMaxHeight = 326
	pickerLookAhead = 350
)

// Placement is where a picker menu opens relative to its trigger.
type Placement string

const (
	PlacementTop    Placement = "top"
	PlacementBottom Placement = "bottom"
)

// PickerPlacement decides where the menu opens. Tall triggers and triggers
// near the bottom edge of the viewport open upward.
func PickerPlacement(triggerHeight, triggerOffsetTop, scrollTop, viewportHeight int) Placement {
	if triggerHeight > pickerMaxHeight || triggerOffsetTop+pickerLookAhead > scrollTop+viewportHeight {
		return PlacementTop
	}
	return PlacementBottom
}
