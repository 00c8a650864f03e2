// Package viewport keeps a floating overlay anchored under a trigger cell.
//
// It has three parts:
//
//   - [Place] computes where an overlay goes given the trigger's rectangle,
//     the overlay's measured size and the screen width.
//   - [Bus] hands out explicit [Subscription] handles for the viewport
//     events an open overlay listens to (clicks, resizes, scrolls, anchor
//     size changes). Owners release their handles when the overlay closes.
//   - [SizeObserver] abstracts "tell me when my anchor changes size". Hosts
//     that can detect layout reflow use [BusObserver]; hosts that cannot use
//     [NoopObserver] and still reposition on resize and scroll.
//
// All coordinates are terminal cells with the origin at the top-left.
package viewport
