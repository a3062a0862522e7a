package search

import (
	"container/heap"

	"courier-server/internal/domain"
)

// frontierItem - обертка для элемента очереди приоритетов.
type frontierItem struct {
	Pos domain.Position // Клетка
	G   float64         // Накопленная стоимость пути от старта
	Key float64         // Приоритет: G (UCS) или G + эвристика (A*)

	// Order - порядковый номер вставки. Разрывает ничьи по Key:
	// кто раньше открыт, тот раньше раскрывается. Детерминизм
	// в пределах одного запуска гарантирован.
	Order int

	Index int // Индекс в куче (нужен для heap.Fix)
}

// frontier реализует heap.Interface и хранит frontierItems.
type frontier []*frontierItem

func (f frontier) Len() int { return len(f) }

func (f frontier) Less(i, j int) bool {
	// MinHeap: меньший ключ - раньше.
	if f[i].Key != f[j].Key {
		return f[i].Key < f[j].Key
	}
	return f[i].Order < f[j].Order
}

func (f frontier) Swap(i, j int) {
	f[i], f[j] = f[j], f[i]
	f[i].Index = i
	f[j].Index = j
}

func (f *frontier) Push(x interface{}) {
	n := len(*f)
	item := x.(*frontierItem)
	item.Index = n
	*f = append(*f, item)
}

func (f *frontier) Pop() interface{} {
	old := *f
	n := len(old)
	item := old[n-1]
	old[n-1] = nil   // избегаем утечки памяти
	item.Index = -1 // для безопасности
	*f = old[0 : n-1]
	return item
}

// push добавляет элемент, присваивая ему очередной порядковый номер.
func (f *frontier) push(pos domain.Position, g, key float64, order int) {
	heap.Push(f, &frontierItem{Pos: pos, G: g, Key: key, Order: order})
}

// pop снимает элемент с минимальным ключом.
func (f *frontier) pop() *frontierItem {
	return heap.Pop(f).(*frontierItem)
}
