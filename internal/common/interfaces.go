package common

type Observer interface {
	Update(event ChatEvent) error
	Name() string
}

type Subject interface {
	Subscribe(observer Observer)
	Unsubscribe(observer Observer)
	Notify(event ChatEvent)
	NotifyAsync(event ChatEvent)
}
