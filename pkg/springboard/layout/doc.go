// Package layout computes the springboard grid: its unscaled content size,
// the minimum zoom scale that fits it into the viewport and the content-space
// center of every item.
//
// Items are placed on a staggered (brick-wall) grid. Odd lines are shifted by
// half a cell so neighbouring lines interlock like a hex pattern, and lines are
// spaced by one diameter so circles nest between the line above. The number of
// items per line is always odd so a center column exists, and item 0 (the
// anchor) takes the center slot of the middle line so the grid opens centered
// on it.
//
// Around the grid an extra margin is added so that even the outermost items
// can be scrolled to the viewport center at the minimum zoom scale:
//
//	+---------------- content ----------------+
//	|   extra/2                               |
//	|        +--------- grid ---------+       |
//	|        |  o   o   o   o   o     |       |
//	|        |    o   o   o   o   o   |       |
//	|        +------------------------+       |
//	|                                         |
//	+-----------------------------------------+
//
// All functions are pure.
package layout
